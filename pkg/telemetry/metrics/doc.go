// Package metrics provides Prometheus instrumentation for the wallet service.
//
// A Collector owns a prometheus.Registry and the metric families for the
// two instrumented surfaces: store operations (counted by operation and
// outcome) and integrity sweeps (runs, scanned rows, and the current number
// of undecryptable secrets). The Collector satisfies the store's OpRecorder
// interface so it can be wired in with store.WithOpRecorder.
package metrics
