package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"newsnotes/internal/config"
	"newsnotes/internal/infra/worker"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/server"
)

func main() {
	logger := logging.NewLogger().With(slog.String("component", "worker"))
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("stats_schedule", cfg.Worker.StatsSchedule),
		slog.String("timezone", cfg.Worker.Timezone),
		slog.Duration("job_timeout", cfg.Worker.JobTimeout),
		slog.String("metrics_addr", cfg.Worker.MetricsAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := server.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	healthServer := worker.NewHealthServer(cfg.Worker.MetricsAddr, prometheus.DefaultGatherer, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	stats := &worker.StatsJob{
		News:     st.News,
		Comments: st.Comments,
		Notes:    st.Notes,
		Users:    st.Users,
		Timeout:  cfg.Worker.JobTimeout,
		Metrics:  worker.NewMetrics(prometheus.DefaultRegisterer),
	}
	runStats := func(ctx context.Context) error {
		_, err := stats.Run(ctx)
		return err
	}

	loc, err := time.LoadLocation(cfg.Worker.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Worker.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	scheduler := worker.NewScheduler(ctx, loc, logger)
	if err := scheduler.Add(worker.StatsJobName, cfg.Worker.StatsSchedule, runStats); err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}

	// prime the gauges instead of waiting for the first tick
	if err := runStats(logging.WithLogger(ctx, logger)); err != nil {
		logger.Warn("initial content stats failed", slog.Any("error", err))
	}

	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("worker started")

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	select {
	case <-scheduler.Stop().Done():
	case <-time.After(cfg.HTTP.ShutdownTimeout):
		logger.Warn("running jobs did not finish before shutdown")
	}
	logger.Info("worker stopped")
}
