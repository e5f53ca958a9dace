package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"keyguardian/wallet/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "wallet",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.registry != registry {
		t.Error("Collector registry not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Registry() did not return the configured registry")
	}
}

func TestCollector_NilRegistry(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	if collector.Registry() == nil {
		t.Fatal("Expected collector to create its own registry")
	}
}

func TestCollector_DefaultNaming(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, prometheus.NewRegistry())

	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("Subsystem = %q, want %q", cfg.Subsystem, config.DefaultMetricsSubsystem)
	}
}

func TestCollector_RecordOperation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		name      string
		operation string
		status    string
	}{
		{name: "successful create", operation: "create_secret", status: "ok"},
		{name: "missing secret", operation: "reveal_secret", status: "not_found"},
		{name: "bad label", operation: "rename_secret", status: "invalid_input"},
		{name: "corrupt payload", operation: "reveal_secret", status: "invalid_ciphertext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordOperation(tt.operation, tt.status)

			count := testutil.ToFloat64(collector.operationsTotal.WithLabelValues(tt.operation, tt.status))
			if count < 1 {
				t.Errorf("Expected operation counter >= 1, got %f", count)
			}
		})
	}
}

func TestCollector_ObserveOperationDuration(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.ObserveOperationDuration("reveal_secret", 4*time.Millisecond)

	if got := testutil.CollectAndCount(collector.operationDuration); got != 1 {
		t.Errorf("duration histogram has %d series, want 1", got)
	}
}

func TestCollector_RecordSweep(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordSweep("ok", 120, 3, 250*time.Millisecond)

	if got := testutil.ToFloat64(collector.sweepsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("sweeps_total = %f, want 1", got)
	}
	if got := testutil.ToFloat64(collector.sweepSecretsScanned); got != 120 {
		t.Errorf("secrets scanned = %f, want 120", got)
	}
	if got := testutil.ToFloat64(collector.corruptSecrets); got != 3 {
		t.Errorf("corrupt gauge = %f, want 3", got)
	}

	// A clean follow-up sweep resets the gauge.
	collector.RecordSweep("ok", 120, 0, 200*time.Millisecond)
	if got := testutil.ToFloat64(collector.corruptSecrets); got != 0 {
		t.Errorf("corrupt gauge after clean sweep = %f, want 0", got)
	}
}

func TestCollector_DisabledIsNoop(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false, Namespace: "test", Subsystem: "wallet"}
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordOperation("create_secret", "ok")
	collector.RecordSweep("ok", 10, 1, time.Second)

	if got := testutil.ToFloat64(collector.operationsTotal.WithLabelValues("create_secret", "ok")); got != 0 {
		t.Errorf("disabled collector recorded operations: %f", got)
	}
	if got := testutil.ToFloat64(collector.corruptSecrets); got != 0 {
		t.Errorf("disabled collector touched gauge: %f", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordOperation("create_secret", "ok")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test_wallet_operations_total") {
		t.Errorf("exposition output missing operations counter:\n%s", body)
	}
}
