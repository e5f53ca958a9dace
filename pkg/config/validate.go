package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "storage.driver").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch cfg.Storage.Driver {
	case "sqlite3", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "storage.driver",
			Message: fmt.Sprintf("unsupported driver %q (expected \"sqlite3\" or \"sqlite\")", cfg.Storage.Driver),
		})
	}
	if cfg.Storage.Path == "" {
		errs = append(errs, FieldError{Field: "storage.path", Message: "must not be empty"})
	}
	if cfg.Storage.MaxOpenConns < 1 {
		errs = append(errs, FieldError{Field: "storage.max_open_conns", Message: "must be at least 1"})
	}
	if cfg.Storage.MaxIdleConns < 0 {
		errs = append(errs, FieldError{Field: "storage.max_idle_conns", Message: "must not be negative"})
	}
	if cfg.Storage.BusyTimeout < 0 {
		errs = append(errs, FieldError{Field: "storage.busy_timeout", Message: "must not be negative"})
	}

	if cfg.Vault.KeyName == "" {
		errs = append(errs, FieldError{Field: "vault.key_name", Message: "must not be empty"})
	}

	if cfg.Maintenance.SweepSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Maintenance.SweepSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "maintenance.sweep_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}
	if cfg.Maintenance.SweepBatchSize < 1 {
		errs = append(errs, FieldError{Field: "maintenance.sweep_batch_size", Message: "must be at least 1"})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level),
		})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
