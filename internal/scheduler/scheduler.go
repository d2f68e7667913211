// Package scheduler runs the periodic fixture refresh.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/okian/roboscout/pkg/logger"
	"github.com/okian/roboscout/pkg/metrics"
)

// ErrInvalidInterval is returned for a non-positive refresh interval.
var ErrInvalidInterval = errors.New("refresh interval must be positive")

// Reloader re-reads season data into the catalog.
type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

// Scheduler reloads fixtures on a fixed interval. A run still in progress
// when the next one is due is skipped.
type Scheduler struct {
	s        gocron.Scheduler
	reloader Reloader
	interval time.Duration
	log      logger.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a scheduler that calls r.Reload every interval.
func New(r Reloader, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s := &Scheduler{s: gs, reloader: r, interval: interval}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start registers the refresh job and starts the scheduler. Runs use ctx;
// cancel it together with Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.refresh(ctx) }),
		gocron.WithName("fixture-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create fixture refresh job: %w", err)
	}
	s.s.Start()
	if s.log != nil {
		s.log.Info(ctx, "fixture refresh scheduled", logger.Duration("interval", s.interval))
	}
	return nil
}

// Stop shuts the scheduler down, waiting for a running refresh.
func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.reloader.Reload(ctx); err != nil {
		metrics.RecordErrorByComponent("scheduler", "reload")
		if s.log != nil {
			s.log.Warn(ctx, "scheduled fixture refresh failed", logger.Error(err))
		}
	}
}
