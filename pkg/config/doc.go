// Package config provides configuration management for the wallet.
//
// Configuration is loaded from a YAML file, filled in with defaults,
// optionally overridden from the environment, and validated before use:
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. WALLET_SECTION_FIELD environment overrides
//  4. Validation (fails fast if invalid)
//
// For example, WALLET_STORAGE_PATH overrides storage.path and
// WALLET_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level.
//
// The encryption key itself is never part of the configuration file; only
// its source (environment, secret files) is configured here. Resolution
// happens through the keysource package at startup.
package config
