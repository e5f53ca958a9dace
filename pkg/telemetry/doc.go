// Package telemetry groups the observability packages for the wallet.
//
// # Components
//
//   - logging: structured logging via log/slog
//   - metrics: Prometheus metrics collection
//
// Components receive a *metrics.Collector explicitly; logging installs the
// process-wide slog default so everything else logs through it.
package telemetry
