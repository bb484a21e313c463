package circuitbreaker

import (
	"log/slog"

	"github.com/velisarios/loadguard/config"
	"github.com/velisarios/loadguard/internal/sysmetrics"
)

// MemoryBreaker trips when the used fraction of physical memory (percent)
// reaches the configured threshold.
type MemoryBreaker struct {
	gate
}

func NewMemory(cfg config.BreakerConfig, logger *slog.Logger) *MemoryBreaker {
	return NewMemoryWithSampler(cfg, sysmetrics.MemoryUsage{}, logger)
}

func NewMemoryWithSampler(cfg config.BreakerConfig, sampler Sampler, logger *slog.Logger) *MemoryBreaker {
	return &MemoryBreaker{
		gate: gate{
			name:      "memory",
			metric:    MetricMemoryUsage,
			enabled:   cfg.Enabled,
			threshold: cfg.Threshold,
			sampler:   sampler,
			logger:    logger,
		},
	}
}
