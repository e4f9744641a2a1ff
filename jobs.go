package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/marcus-crane/showscout/config"
)

const pruneTimeout = time.Minute

type Pruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

func SetupInBackground(cfg config.Config, pruner Pruner) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(pruneHistory, pruner, cfg.Retention()),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func pruneHistory(pruner Pruner, retention time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-retention)
	removed, err := pruner.Prune(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to prune lookup history", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		slog.Info("Pruned lookup history",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff))
	}
}
