package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/angeloszaimis/wake-web/internal/metrics"
	"github.com/angeloszaimis/wake-web/internal/state"
	"github.com/angeloszaimis/wake-web/internal/targets"
	"github.com/angeloszaimis/wake-web/internal/visitor"
)

// Scheduler drives check cycles at a fixed interval.
type Scheduler struct {
	loader    targets.Loader
	visitor   visitor.Visitor
	state     *state.State
	collector *metrics.Collector
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time
	running   *semaphore.Weighted
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now as the source of cycle timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithCollector reports cycle and visit events to collector.
func WithCollector(collector *metrics.Collector) Option {
	return func(s *Scheduler) {
		s.collector = collector
	}
}

// New creates a scheduler. The visitor session is owned by the caller.
func New(
	loader targets.Loader,
	v visitor.Visitor,
	st *state.State,
	interval time.Duration,
	logger *slog.Logger,
	opts ...Option,
) *Scheduler {
	s := &Scheduler{
		loader:   loader,
		visitor:  v,
		state:    st,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		running:  semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start runs the scheduler in its own goroutine. The returned channel receives
// the result of Run once it stops; cancel ctx to stop it.
func (s *Scheduler) Start(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run(ctx)
	}()

	return errCh
}

// Run starts a cycle immediately and then on every tick until ctx is done.
// It returns nil on cancellation and an error wrapping visitor.ErrSession when
// the visitor session is lost.
func (s *Scheduler) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fatal := make(chan error, 1)

	trigger := func() {
		if !s.running.TryAcquire(1) {
			s.logger.Warn("Previous check cycle still running, skipping tick",
				slog.Duration("interval", s.interval))
			s.collector.Emit(metrics.MetricEvent{Type: metrics.EventCycleSkipped})
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.running.Release(1)

			if err := s.RunCycle(ctx); err != nil {
				select {
				case fatal <- err:
				default:
				}
			}
		}()
	}

	s.logger.Info("Scheduler started",
		slog.Duration("interval", s.interval),
		slog.String("source", s.loader.Source()))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	trigger()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return nil

		case err := <-fatal:
			s.logger.Error("Scheduler halted", slog.Any("err", err))
			return err

		case <-ticker.C:
			trigger()
		}
	}
}

// RunCycle performs one pass over the target list. Every line recorded in the
// cycle carries the timestamp taken when the cycle began. Load and visit
// failures are recorded as lines; only a lost visitor session is returned.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	at := s.now()
	log := s.logger.With(slog.String("cycle_id", uuid.NewString()))

	log.Debug("Check cycle started")
	s.collector.Emit(metrics.MetricEvent{Type: metrics.EventCycleStarted, Timestamp: at})

	urls, err := s.loader.Load()
	if err != nil {
		s.state.Record(loadFailureLine(at, s.loader.Source(), err),
			slog.String("source", s.loader.Source()),
			slog.String("outcome", "load_failed"))
		s.collector.Emit(metrics.MetricEvent{Type: metrics.EventLoadFailed, Timestamp: at})
		return nil
	}

	for _, url := range urls {
		start := time.Now()
		err := s.visitor.Visit(ctx, url)
		if errors.Is(err, visitor.ErrSession) {
			return fmt.Errorf("visit %s: %w", url, err)
		}
		if ctx.Err() != nil {
			log.Debug("Check cycle interrupted", slog.String("target", url))
			return nil
		}

		elapsed := time.Since(start)
		s.collector.Emit(metrics.MetricEvent{
			Type:      metrics.EventVisitCompleted,
			Timestamp: time.Now(),
			Target:    url,
			Duration:  elapsed,
			Success:   err == nil,
		})

		outcome := OutcomeVisited
		if err != nil {
			outcome = "failed"
		}
		s.state.Record(visitLine(at, url, err),
			slog.String("target", url),
			slog.String("outcome", outcome),
			slog.Duration("duration", elapsed))
	}

	log.Debug("Check cycle finished", slog.Int("targets", len(urls)))
	return nil
}
