package circuitbreaker

import (
	"log/slog"

	"github.com/velisarios/loadguard/config"
	"github.com/velisarios/loadguard/internal/sysmetrics"
)

// LoadAverageBreaker trips when the one-minute system load average reaches
// the configured threshold. The load average is the OS-reported run-queue
// length, so on a healthy box it tracks the number of cores.
//
// The default sampler reads the instantaneous OS figure. A locally maintained
// windowed average can be substituted through NewLoadAverageWithSampler
// without touching the trip logic.
type LoadAverageBreaker struct {
	gate
}

// NewLoadAverage builds a breaker over the OS one-minute load average.
// Enabled and threshold are copied from cfg; no I/O happens here.
func NewLoadAverage(cfg config.BreakerConfig, logger *slog.Logger) *LoadAverageBreaker {
	return NewLoadAverageWithSampler(cfg, sysmetrics.LoadAverage{}, logger)
}

// NewLoadAverageWithSampler builds a load-average breaker over a custom
// sampler.
func NewLoadAverageWithSampler(cfg config.BreakerConfig, sampler Sampler, logger *slog.Logger) *LoadAverageBreaker {
	return &LoadAverageBreaker{
		gate: gate{
			name:      "load_average",
			metric:    MetricLoadAverage,
			enabled:   cfg.Enabled,
			threshold: cfg.Threshold,
			sampler:   sampler,
			logger:    logger,
		},
	}
}
