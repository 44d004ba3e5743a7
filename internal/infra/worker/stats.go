// Package worker runs the background jobs of the site: a cron scheduler,
// the content statistics job and the probe/metrics server.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newsnotes/internal/observability/logging"
	"newsnotes/internal/observability/metrics"
)

// StatsJobName labels the statistics job in logs and metrics.
const StatsJobName = "content_stats"

// Counter is any repository that can count its rows.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsJob counts the stored content and publishes it as gauges.
type StatsJob struct {
	News     Counter
	Comments Counter
	Notes    Counter
	Users    Counter

	Timeout time.Duration
	Metrics *Metrics
}

// Run counts every table concurrently. The gauges are only updated when
// every count succeeds.
func (j *StatsJob) Run(ctx context.Context) (metrics.ContentCounts, error) {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	counts, err := j.count(ctx)
	if j.Metrics != nil {
		j.Metrics.RecordRun(StatsJobName, time.Since(start).Seconds(), err)
	}

	logger := logging.FromContext(ctx)
	if err != nil {
		logger.Error("content stats failed", slog.String("job", StatsJobName), slog.Any("error", err))
		return metrics.ContentCounts{}, err
	}

	metrics.UpdateContentTotals(counts)
	logger.Info("content stats updated",
		slog.String("job", StatsJobName),
		slog.Int64("news", counts.News),
		slog.Int64("comments", counts.Comments),
		slog.Int64("notes", counts.Notes),
		slog.Int64("users", counts.Users),
		slog.Duration("duration", time.Since(start)))
	return counts, nil
}

func (j *StatsJob) count(ctx context.Context) (metrics.ContentCounts, error) {
	var c metrics.ContentCounts
	g, gctx := errgroup.WithContext(ctx)
	for name, target := range map[string]struct {
		repo Counter
		dst  *int64
	}{
		"news":     {j.News, &c.News},
		"comments": {j.Comments, &c.Comments},
		"notes":    {j.Notes, &c.Notes},
		"users":    {j.Users, &c.Users},
	} {
		g.Go(func() error {
			n, err := target.repo.Count(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*target.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return metrics.ContentCounts{}, err
	}
	return c, nil
}
