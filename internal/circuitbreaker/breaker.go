package circuitbreaker

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Sampler reads a live metric value. Implementations return an error when the
// metric cannot be read on this platform; breakers treat that the same as a
// negative sample and fail open.
type Sampler interface {
	Sample() (float64, error)
}

type Metric int

const (
	MetricLoadAverage Metric = iota
	MetricCPUUsage
	MetricMemoryUsage
)

// Label is the identifier used in debug output, e.g. "seenLoadAverage=…".
func (m Metric) Label() string {
	switch m {
	case MetricLoadAverage:
		return "LoadAverage"
	case MetricCPUUsage:
		return "CPUUsage"
	case MetricMemoryUsage:
		return "MemoryUsage"
	default:
		return "Unknown"
	}
}

func (m Metric) String() string {
	switch m {
	case MetricLoadAverage:
		return "load average"
	case MetricCPUUsage:
		return "CPU usage"
	case MetricMemoryUsage:
		return "memory usage"
	default:
		return "unknown metric"
	}
}

// Evaluation is the outcome of one trip check: the decision together with the
// values it was based on. It travels back to the caller that requested the
// check, so concurrent callers sharing one breaker never see each other's
// readings.
type Evaluation struct {
	Tripped bool
	Seen    float64
	Allowed float64
	Metric  Metric
}

// DebugInfo formats the evaluated pair, e.g.
// "seenLoadAverage=5.2 allowedLoadAverage=4".
func (e Evaluation) DebugInfo() string {
	label := e.Metric.Label()
	return fmt.Sprintf("seen%s=%v allowed%s=%v", label, e.Seen, label, e.Allowed)
}

// ErrorMessage formats the rejection reason. Meaningful only for a tripped
// evaluation.
func (e Evaluation) ErrorMessage() string {
	return fmt.Sprintf("Circuit breaker triggered: seen %s %v is at or above the allowed threshold %v",
		e.Metric, e.Seen, e.Allowed)
}

// CircuitBreaker is the contract every metric-gated breaker implements.
//
// Evaluate performs a fresh trip check and returns the decision with its
// diagnostic pair; nothing is cached between calls. IsTripped, DebugInfo and
// ErrorMessage mirror that contract for callers that only need the admission
// boolean or a human-readable report: DebugInfo and ErrorMessage format the
// breaker's most recent evaluation, which under concurrent use may belong to
// another caller. Callers that must correlate a decision with its exact inputs
// use Evaluate.
type CircuitBreaker interface {
	Name() string
	Evaluate() Evaluation
	IsTripped() bool
	DebugInfo() string
	ErrorMessage() string
	IsEnabled() bool
	Enable()
	Disable()
}

// gate is the shared implementation behind every breaker variant: a threshold
// comparison over an injected sampler, with a service-level on/off switch that
// is independent of the variant's configured enabled flag.
type gate struct {
	name      string
	metric    Metric
	enabled   bool
	threshold float64
	sampler   Sampler
	logger    *slog.Logger

	disabled atomic.Bool
	last     atomic.Pointer[Evaluation]
}

func (g *gate) Name() string { return g.name }

// IsEnabled reports the service-level switch, not the configured flag.
func (g *gate) IsEnabled() bool { return !g.disabled.Load() }

func (g *gate) Enable() { g.disabled.Store(false) }

func (g *gate) Disable() { g.disabled.Store(true) }

// Threshold returns the configured trip threshold.
func (g *gate) Threshold() float64 { return g.threshold }

// Evaluate samples the metric and compares it against the threshold. The
// threshold itself counts as a breach. A disabled breaker (either switch)
// never samples. A failed or negative reading is logged and reported as not
// tripped, leaving the previous diagnostics untouched: the breaker only trips
// on a confident reading.
func (g *gate) Evaluate() Evaluation {
	if !g.IsEnabled() || !g.enabled {
		return Evaluation{Metric: g.metric}
	}

	allowed := g.threshold
	seen, err := g.sampler.Sample()
	if err != nil || seen < 0 {
		g.logger.Warn("unable to get metric reading",
			slog.String("breaker", g.name),
			slog.Any("err", err))
		return Evaluation{Metric: g.metric}
	}

	ev := Evaluation{
		Tripped: seen >= allowed,
		Seen:    seen,
		Allowed: allowed,
		Metric:  g.metric,
	}
	g.last.Store(&ev)

	return ev
}

// IsTripped performs a fresh evaluation and returns only the decision.
func (g *gate) IsTripped() bool {
	return g.Evaluate().Tripped
}

// DebugInfo formats the most recent evaluation. If the breaker was never
// evaluated it logs a warning and reports the zero pair.
func (g *gate) DebugInfo() string {
	last := g.last.Load()
	if last == nil {
		g.logger.Warn("circuit breaker queried for diagnostics before any evaluation",
			slog.String("breaker", g.name))
		return Evaluation{Metric: g.metric}.DebugInfo()
	}
	return last.DebugInfo()
}

// ErrorMessage formats the rejection reason from the most recent evaluation.
// It assumes a tripped evaluation already happened; calling it first yields a
// stale or zero-valued message.
func (g *gate) ErrorMessage() string {
	last := g.last.Load()
	if last == nil {
		return Evaluation{Metric: g.metric}.ErrorMessage()
	}
	return last.ErrorMessage()
}
