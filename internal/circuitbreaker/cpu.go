package circuitbreaker

import (
	"log/slog"

	"github.com/velisarios/loadguard/config"
	"github.com/velisarios/loadguard/internal/sysmetrics"
)

// CPUBreaker trips when system-wide CPU utilization (percent) reaches the
// configured threshold.
type CPUBreaker struct {
	gate
}

func NewCPU(cfg config.BreakerConfig, logger *slog.Logger) *CPUBreaker {
	return NewCPUWithSampler(cfg, sysmetrics.CPUUsage{}, logger)
}

func NewCPUWithSampler(cfg config.BreakerConfig, sampler Sampler, logger *slog.Logger) *CPUBreaker {
	return &CPUBreaker{
		gate: gate{
			name:      "cpu",
			metric:    MetricCPUUsage,
			enabled:   cfg.Enabled,
			threshold: cfg.Threshold,
			sampler:   sampler,
			logger:    logger,
		},
	}
}
