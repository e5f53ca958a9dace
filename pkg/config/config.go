package config

import "time"

// Config is the root configuration structure for the wallet.
type Config struct {
	// Storage contains configuration for the SQLite-backed record store.
	Storage StorageConfig `yaml:"storage"`

	// Vault contains configuration for encryption key sourcing.
	Vault VaultConfig `yaml:"vault"`

	// Maintenance contains configuration for scheduled integrity sweeps.
	Maintenance MaintenanceConfig `yaml:"maintenance"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StorageConfig contains configuration for the record store.
type StorageConfig struct {
	// Driver selects the SQLite driver: "sqlite3" (cgo) or "sqlite"
	// (pure Go).
	// Default: "sqlite3"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "data/wallet.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// VaultConfig contains configuration for sourcing the encryption key.
type VaultConfig struct {
	// KeyName is the secret name the encryption key is resolved under.
	// Default: "encryption-key"
	KeyName string `yaml:"key_name"`

	// SecretsPath is an optional directory of mounted secret files, tried
	// before the environment. Empty disables the file provider.
	SecretsPath string `yaml:"secrets_path"`

	// WatchSecrets enables fsnotify watching of the secrets directory.
	// Default: false
	WatchSecrets bool `yaml:"watch_secrets"`

	// EnvPrefix namespaces secret environment variables.
	// Default: "WALLET_SECRET_"
	EnvPrefix string `yaml:"env_prefix"`
}

// MaintenanceConfig contains configuration for background maintenance.
type MaintenanceConfig struct {
	// SweepSchedule is a cron expression for the ciphertext integrity
	// sweep. Empty disables scheduled sweeps.
	// Default: "0 3 * * *" (daily at 3 AM)
	SweepSchedule string `yaml:"sweep_schedule"`

	// SweepBatchSize is how many secrets are verified per batch.
	// Default: 500
	SweepBatchSize int `yaml:"sweep_batch_size"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "keyguardian"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem label.
	// Default: "wallet"
	Subsystem string `yaml:"subsystem"`
}
