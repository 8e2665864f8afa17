// Package usecase implements the rotation runner, which reseals objects whose
// keys are due for rotation.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
)

// Config holds rotation runner configuration
type Config struct {
	Interval    time.Duration
	Concurrency int
}

// Scheduler defines the rotation schedule operations used by the runner.
type Scheduler interface {
	GetPendingRotations() []rotationDomain.Entry
	Rotate(scope string) error
	Requeue(entry rotationDomain.Entry)
}

// Handler reseals the object identified by entry.Scope, typically through one of
// the vault Reencrypt methods, which schedules the scope again.
type Handler func(ctx context.Context, entry rotationDomain.Entry) error

// Runner processes pending rotations.
//
// Each entry is claimed with Scheduler.Rotate before its handler runs, so two
// concurrent passes never reseal the same object. A failed handler puts the
// entry back as pending; other entries proceed.
type Runner struct {
	config    Config
	scheduler Scheduler
	logger    *slog.Logger
}

// NewRunner creates a new Runner
func NewRunner(config Config, scheduler Scheduler, logger *slog.Logger) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &Runner{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start runs a pass every config.Interval until ctx is done.
func (r *Runner) Start(ctx context.Context, handler Handler) error {
	if r.logger != nil {
		r.logger.Info("starting key rotation runner",
			slog.Duration("interval", r.config.Interval),
			slog.Int("concurrency", r.config.Concurrency),
		)
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if r.logger != nil {
				r.logger.Info("stopping key rotation runner")
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Run(ctx, handler); err != nil && ctx.Err() == nil {
				if r.logger != nil {
					r.logger.Error("failed to run key rotation", slog.Any("error", err))
				}
			}
		}
	}
}

// Run processes every entry pending at call time and returns once all of them
// have been handled. Entries not started before ctx is done are left pending and
// counted as skipped; the returned error is then ctx.Err().
func (r *Runner) Run(ctx context.Context, handler Handler) (rotationDomain.RunResult, error) {
	pending := r.scheduler.GetPendingRotations()
	if len(pending) == 0 {
		return rotationDomain.RunResult{}, nil
	}

	if r.logger != nil {
		r.logger.Info("rotating keys", slog.Int("count", len(pending)))
	}

	var (
		mu     sync.Mutex
		result rotationDomain.RunResult
	)
	record := func(counter *int) {
		mu.Lock()
		*counter++
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(r.config.Concurrency)

	for _, entry := range pending {
		if ctx.Err() != nil {
			record(&result.Skipped)
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				record(&result.Skipped)
				return nil
			}
			if err := r.scheduler.Rotate(entry.Scope); err != nil {
				if errors.Is(err, rotationDomain.ErrRotationNotScheduled) {
					record(&result.Skipped)
					return nil
				}
				return err
			}
			if err := handler(ctx, entry); err != nil {
				r.scheduler.Requeue(entry)
				record(&result.Failed)
				if r.logger != nil {
					r.logger.Warn("failed to rotate key",
						slog.String("scope", entry.Scope),
						slog.Any("error", err),
					)
				}
				return nil
			}
			record(&result.Rotated)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	if r.logger != nil {
		r.logger.Info("key rotation finished",
			slog.Int("rotated", result.Rotated),
			slog.Int("failed", result.Failed),
			slog.Int("skipped", result.Skipped),
		)
	}
	return result, ctx.Err()
}
