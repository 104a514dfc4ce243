package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/wake-web/config"
	"github.com/angeloszaimis/wake-web/internal/handler"
	"github.com/angeloszaimis/wake-web/internal/httpserver"
	"github.com/angeloszaimis/wake-web/internal/metrics"
	"github.com/angeloszaimis/wake-web/internal/scheduler"
	"github.com/angeloszaimis/wake-web/internal/state"
	"github.com/angeloszaimis/wake-web/internal/status"
	"github.com/angeloszaimis/wake-web/internal/targets"
	"github.com/angeloszaimis/wake-web/internal/visitor"
	"github.com/angeloszaimis/wake-web/pkg/logger"
)

const metricsBufferSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Level == config.LogLevelDebug, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Wake web stopped", slog.Any("err", err))
		cancel()
		os.Exit(1)
	}
}

// run serves the status page and drives check cycles until ctx is cancelled,
// the server fails, or the visitor session is lost.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := state.New(cfg.Status.MaxLogLines, time.Now(), log)

	v, err := newVisitor(cfg)
	if err != nil {
		return fmt.Errorf("start visitor session: %w", err)
	}
	defer v.Close()

	collector := metrics.NewCollector(metricsBufferSize, log)
	collector.Start(ctx)

	sched := scheduler.New(
		targets.NewFileLoader(cfg.Targets.Path),
		v,
		st,
		cfg.ScheduleInterval(),
		log,
		scheduler.WithCollector(collector),
	)

	statusHandler := handler.NewStatusHandler(log, status.NewReporter(st, cfg.Status.RefreshSeconds), st)

	srv, err := httpserver.New(
		httpserver.Address(cfg.Server.Host, cfg.Server.Port),
		setupRouter(statusHandler, collector),
		log,
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Start()
	}()

	schedErrCh := sched.Start(ctx)
	schedDone := false

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-srvErrCh:
		if err != nil {
			runErr = fmt.Errorf("status server: %w", err)
		}
	case err := <-schedErrCh:
		schedDone = true
		if err != nil {
			runErr = fmt.Errorf("check scheduler: %w", err)
		}
	}

	cancel()
	if !schedDone {
		<-schedErrCh
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error("Error during shutdown", slog.Any("err", err))
	}

	return runErr
}

func newVisitor(cfg *config.Config) (visitor.Visitor, error) {
	return visitor.New(visitor.Options{
		Engine:    cfg.Visitor.Engine,
		Timeout:   cfg.VisitTimeout(),
		UserAgent: cfg.Visitor.UserAgent,
	})
}
