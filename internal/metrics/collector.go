package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventCycleStarted   EventType = "cycle_started"
	EventCycleSkipped   EventType = "cycle_skipped"
	EventLoadFailed     EventType = "load_failed"
	EventVisitCompleted EventType = "visit_completed"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Target    string
	Duration  time.Duration
	Success   bool
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

// Emit queues event without blocking. Events are dropped when the buffer is
// full or the collector is nil.
func (c *Collector) Emit(event MetricEvent) {
	if c == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Dropped metric event", slog.String("type", string(event.Type)))
	}
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
	case EventCycleStarted:
		c.metrics.IncrementCycles()

	case EventCycleSkipped:
		c.metrics.IncrementSkipped()

	case EventLoadFailed:
		c.metrics.IncrementLoadFailures()

	case EventVisitCompleted:
		c.metrics.RecordVisit(event.Target, event.Timestamp, event.Duration, event.Success)
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
