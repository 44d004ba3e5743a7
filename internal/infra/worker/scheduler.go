package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsnotes/internal/observability/logging"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on five-field cron schedules in a fixed location.
// Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *slog.Logger
}

// NewScheduler creates a stopped scheduler. Jobs receive ctx, carrying
// logger.
func NewScheduler(ctx context.Context, loc *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		// Recover sits inside SkipIfStillRunning so a panicking run still
		// releases its slot.
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}), cron.Recover(cronLogger{logger})),
		),
		ctx:    logging.WithLogger(ctx, logger),
		logger: logger,
	}
}

// Add schedules job under name.
func (s *Scheduler) Add(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job(s.ctx); err != nil {
			s.logger.Warn("job failed", slog.String("job", name), slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.logger.Info("job scheduled", slog.String("job", name), slog.String("schedule", schedule))
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
