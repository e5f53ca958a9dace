package config

import "time"

// Default values for configuration fields.
const (
	// Storage defaults
	DefaultStorageDriver       = "sqlite3"
	DefaultStoragePath         = "data/wallet.db"
	DefaultStorageMaxOpenConns = 10
	DefaultStorageMaxIdleConns = 5
	DefaultStorageWALMode      = true
	DefaultStorageBusyTimeout  = 5 * time.Second

	// Vault defaults
	DefaultVaultKeyName   = "encryption-key"
	DefaultVaultEnvPrefix = "WALLET_SECRET_"

	// Maintenance defaults
	DefaultSweepSchedule  = "0 3 * * *"
	DefaultSweepBatchSize = 500

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "keyguardian"
	DefaultMetricsSubsystem = "wallet"
)

// DefaultConfig returns a fully-defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for unset configuration fields.
// Only zero values are replaced; explicit settings are preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DefaultStorageDriver
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Storage.MaxOpenConns == 0 {
		cfg.Storage.MaxOpenConns = DefaultStorageMaxOpenConns
	}
	if cfg.Storage.MaxIdleConns == 0 {
		cfg.Storage.MaxIdleConns = DefaultStorageMaxIdleConns
	}
	if !cfg.Storage.WALMode {
		cfg.Storage.WALMode = DefaultStorageWALMode
	}
	if cfg.Storage.BusyTimeout == 0 {
		cfg.Storage.BusyTimeout = DefaultStorageBusyTimeout
	}

	if cfg.Vault.KeyName == "" {
		cfg.Vault.KeyName = DefaultVaultKeyName
	}
	if cfg.Vault.EnvPrefix == "" {
		cfg.Vault.EnvPrefix = DefaultVaultEnvPrefix
	}

	if cfg.Maintenance.SweepSchedule == "" {
		cfg.Maintenance.SweepSchedule = DefaultSweepSchedule
	}
	if cfg.Maintenance.SweepBatchSize == 0 {
		cfg.Maintenance.SweepBatchSize = DefaultSweepBatchSize
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if !cfg.Telemetry.Metrics.Enabled {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
