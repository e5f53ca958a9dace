package metrics

import (
	"time"

	"keyguardian/wallet/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus registry and all wallet metric families.
// It is safe for concurrent use; the underlying prometheus vectors handle
// their own synchronization.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Store operation counts by operation and outcome
	operationsTotal *prometheus.CounterVec

	// Store operation latency
	operationDuration *prometheus.HistogramVec

	// Integrity sweep runs by outcome
	sweepsTotal *prometheus.CounterVec

	// Rows scanned across all sweeps
	sweepSecretsScanned prometheus.Counter

	// Sweep wall-clock duration
	sweepDuration prometheus.Histogram

	// Secrets that failed decryption in the most recent sweep
	corruptSecrets prometheus.Gauge
}

// NewCollector creates a metrics collector registered against the given
// registry. If registry is nil a fresh one is created, keeping wallet
// metrics isolated from the global default registry.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operations_total",
				Help:      "Total number of store operations by operation and outcome",
			},
			[]string{"operation", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of store operations in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"operation"},
		),

		sweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "integrity_sweeps_total",
				Help:      "Total number of integrity sweep runs by outcome",
			},
			[]string{"status"},
		),

		sweepSecretsScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "integrity_sweep_secrets_scanned_total",
				Help:      "Total number of secrets scanned by integrity sweeps",
			},
		),

		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "integrity_sweep_duration_seconds",
				Help:      "Duration of integrity sweep runs in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0},
			},
		),

		corruptSecrets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "corrupt_secrets",
				Help:      "Number of secrets that failed decryption in the most recent sweep",
			},
		),
	}

	registry.MustRegister(
		c.operationsTotal,
		c.operationDuration,
		c.sweepsTotal,
		c.sweepSecretsScanned,
		c.sweepDuration,
		c.corruptSecrets,
	)

	return c
}

// RecordOperation counts a completed store operation. It satisfies the
// store's OpRecorder interface.
func (c *Collector) RecordOperation(operation, status string) {
	if !c.config.Enabled {
		return
	}
	c.operationsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveOperationDuration records the latency of a store operation.
func (c *Collector) ObserveOperationDuration(operation string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordSweep records the outcome of one integrity sweep run.
func (c *Collector) RecordSweep(status string, scanned, corrupt int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.sweepsTotal.WithLabelValues(status).Inc()
	c.sweepSecretsScanned.Add(float64(scanned))
	c.sweepDuration.Observe(duration.Seconds())
	c.corruptSecrets.Set(float64(corrupt))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
