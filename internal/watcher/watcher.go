package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/velisarios/loadguard/internal/circuitbreaker"
)

// Watch periodically evaluates every registered breaker and logs trip and
// clear transitions. Only edges are logged; a breaker that stays tripped
// across ticks produces a single warning.
func Watch(
	ctx context.Context,
	registry *circuitbreaker.Registry,
	interval time.Duration,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tripped := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Breaker watcher stopped")
			return

		case <-ticker.C:
			for _, cb := range registry.All() {
				ev := cb.Evaluate()
				changed := ev.Tripped != tripped[cb.Name()]
				tripped[cb.Name()] = ev.Tripped

				if !changed {
					continue
				}

				if ev.Tripped {
					logger.Warn("Circuit breaker tripped",
						slog.String("breaker", cb.Name()),
						slog.String("debug", ev.DebugInfo()))
				} else {
					logger.Info("Circuit breaker cleared",
						slog.String("breaker", cb.Name()),
						slog.String("debug", ev.DebugInfo()))
				}
			}
		}
	}
}
