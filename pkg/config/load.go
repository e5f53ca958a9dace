package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and then
// applies WALLET_SECTION_FIELD environment overrides, which always take
// precedence over file values. The result is re-validated.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Storage overrides
	if val := os.Getenv("WALLET_STORAGE_DRIVER"); val != "" {
		cfg.Storage.Driver = val
	}
	if val := os.Getenv("WALLET_STORAGE_PATH"); val != "" {
		cfg.Storage.Path = val
	}
	if val := os.Getenv("WALLET_STORAGE_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Storage.MaxOpenConns = i
		}
	}
	if val := os.Getenv("WALLET_STORAGE_MAX_IDLE_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Storage.MaxIdleConns = i
		}
	}
	if val := os.Getenv("WALLET_STORAGE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Storage.BusyTimeout = d
		}
	}

	// Vault overrides
	if val := os.Getenv("WALLET_VAULT_KEY_NAME"); val != "" {
		cfg.Vault.KeyName = val
	}
	if val := os.Getenv("WALLET_VAULT_SECRETS_PATH"); val != "" {
		cfg.Vault.SecretsPath = val
	}
	if val := os.Getenv("WALLET_VAULT_WATCH_SECRETS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Vault.WatchSecrets = b
		}
	}

	// Maintenance overrides
	if val := os.Getenv("WALLET_MAINTENANCE_SWEEP_SCHEDULE"); val != "" {
		cfg.Maintenance.SweepSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("WALLET_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("WALLET_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("WALLET_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
