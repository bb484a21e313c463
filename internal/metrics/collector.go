package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventEvaluation      EventType = "evaluation"
	EventRequestAdmitted EventType = "request_admitted"
	EventRequestRejected EventType = "request_rejected"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Breaker   string
	Seen      float64
	Allowed   float64
	Tripped   bool
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventEvaluation:
		c.metrics.RecordEvaluation(event.Breaker, event.Seen, event.Allowed, event.Tripped)

	case EventRequestAdmitted:
		c.metrics.RecordAdmission()

	case EventRequestRejected:
		c.metrics.RecordRejection(event.Breaker)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
