package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/velisarios/loadguard/internal/circuitbreaker"
	"github.com/velisarios/loadguard/internal/metrics"
)

// AdmissionHandler gates requests behind the registered circuit breakers.
// Every breaker is evaluated per request; the first tripped one rejects the
// request with 503 before the wrapped handler runs.
type AdmissionHandler struct {
	logger           *slog.Logger
	registry         *circuitbreaker.Registry
	next             http.Handler
	metricsCollector *metrics.Collector
}

func NewAdmissionHandler(logger *slog.Logger, registry *circuitbreaker.Registry, next http.Handler, collector *metrics.Collector) *AdmissionHandler {
	return &AdmissionHandler{
		logger:           logger,
		registry:         registry,
		next:             next,
		metricsCollector: collector,
	}
}

func (h *AdmissionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientIP := extractClientIP(r)

	for _, cb := range h.registry.All() {
		ev := cb.Evaluate()

		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventEvaluation,
			Timestamp: time.Now(),
			Breaker:   cb.Name(),
			Seen:      ev.Seen,
			Allowed:   ev.Allowed,
			Tripped:   ev.Tripped,
		})

		if ev.Tripped {
			h.logger.Warn("Request rejected",
				slog.String("client", clientIP),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("breaker", cb.Name()),
				slog.String("debug", ev.DebugInfo()))

			h.emitEvent(metrics.MetricEvent{
				Type:      metrics.EventRequestRejected,
				Timestamp: time.Now(),
				Breaker:   cb.Name(),
			})

			w.Header().Set("X-Rejected-By", cb.Name())
			http.Error(w, ev.ErrorMessage(), http.StatusServiceUnavailable)
			return
		}
	}

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestAdmitted,
		Timestamp: time.Now(),
	})

	h.next.ServeHTTP(w, r)
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (h *AdmissionHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	select {
	case h.metricsCollector.EventChannel() <- event:
	default:
	}
}
