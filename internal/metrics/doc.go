// Package metrics provides real-time metrics collection for the admission
// guard.
//
// It uses a channel-based event pipeline to asynchronously collect metrics
// about:
//   - Breaker evaluations (last observed value and threshold, trip counts)
//   - Admitted and rejected requests
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the request path. Events are sent via buffered channels with
// non-blocking semantics to prevent performance degradation under load.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:    metrics.EventRequestRejected,
//		Breaker: "load_average",
//	}
//
//	snapshot := collector.Snapshot()
//
// The package provides thread-safe metrics storage using sync.RWMutex and
// supports graceful shutdown with event draining to prevent data loss.
package metrics
