// Package scheduler runs the due sweep once a day.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/lexis/internal/engine"
)

// Sweeper computes what is due across all learners.
type Sweeper interface {
	Sweep(ctx context.Context) (engine.SweepReport, error)
}

// Scheduler triggers a sweep every day at a fixed UTC time.
type Scheduler struct {
	cron    *gocron.Scheduler
	sweeper Sweeper
	logger  *slog.Logger
	timeout time.Duration
}

// New schedules a daily sweep at "HH:MM" UTC.
func New(s Sweeper, at string, logger *slog.Logger) (*Scheduler, error) {
	if _, err := time.Parse("15:04", at); err != nil {
		return nil, fmt.Errorf("parse sweep time %q: %w", at, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	sc := &Scheduler{
		cron:    gocron.NewScheduler(time.UTC),
		sweeper: s,
		logger:  logger,
		timeout: 10 * time.Minute,
	}
	if _, err := sc.cron.Every(1).Day().At(at).Do(sc.run); err != nil {
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}
	return sc, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Error("scheduled sweep failed", "error", err)
	}
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop terminates scheduled runs.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// NextRun returns when the next sweep is due.
func (s *Scheduler) NextRun() time.Time {
	_, t := s.cron.NextRun()
	return t
}
