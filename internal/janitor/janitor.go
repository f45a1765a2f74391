// Package janitor runs periodic background tasks alongside request traffic.
package janitor

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context, now time.Time)

// Runner executes a task once at start and then on every interval tick until
// its context is cancelled. The stop signal is observed between iterations
// only: an in-progress sweep always finishes before Done is closed, so a stop
// never leaves a sweep half-applied.
type Runner struct {
	name     string
	interval time.Duration
	task     Task
	logger   *slog.Logger
	done     chan struct{}
}

func New(name string, interval time.Duration, task Task, logger *slog.Logger) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (r *Runner) Start(ctx context.Context) {
	go r.loop(ctx)
}

// Done is closed once the runner has fully stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	r.logger.Info("janitor started", "name", r.name, "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.task(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("janitor stopped", "name", r.name)
			return
		case now := <-ticker.C:
			r.task(ctx, now)
		}
	}
}
