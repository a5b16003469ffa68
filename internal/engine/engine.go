// Package engine sequences the scheduling, mastery, scoring and progress
// components over the store. Every write loads the current records, runs
// the pure components and persists the results together with the
// triggering event in one transaction, holding the learner's lock.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
)

// Options configures an Engine. Zero fields take defaults.
type Options struct {
	Clock      clock.Clock
	Thresholds session.Thresholds
	DueTable   mastery.DueTable
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	Workers    int
}

// DefaultOptions returns the system clock, default thresholds and due
// table, and four sweep workers.
func DefaultOptions() Options {
	return Options{
		Clock:      clock.System{},
		Thresholds: session.DefaultThresholds(),
		DueTable:   mastery.DefaultDueTable,
		Workers:    4,
	}
}

type Engine struct {
	store   *store.Store
	clock   clock.Clock
	tracker *mastery.Tracker
	scorer  *session.Scorer
	metrics *metrics.Metrics
	logger  *slog.Logger
	workers int
	locks   keyedMutex
}

func New(s *store.Store, opts Options) (*Engine, error) {
	def := DefaultOptions()
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.Thresholds == (session.Thresholds{}) {
		opts.Thresholds = def.Thresholds
	}
	if opts.DueTable == (mastery.DueTable{}) {
		opts.DueTable = def.DueTable
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = def.Workers
	}

	tracker, err := mastery.NewTracker(opts.Clock, opts.DueTable)
	if err != nil {
		return nil, err
	}
	scorer, err := session.NewScorer(opts.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Engine{
		store:   s,
		clock:   opts.Clock,
		tracker: tracker,
		scorer:  scorer,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		workers: opts.Workers,
	}, nil
}

// Metrics returns the engine's collectors.
func (e *Engine) Metrics() *metrics.Metrics {
	return e.metrics
}

func (e *Engine) today() time.Time {
	return clock.Today(e.clock)
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fault.InvalidArgument("%s id is required", kind)
	}
	return nil
}

// loadStats returns the learner's stats, or fresh ones before any activity.
func loadStats(ctx context.Context, q *store.Queries, learnerID string) (progress.LearnerStats, error) {
	stats, err := q.GetStats(ctx, learnerID)
	if errors.Is(err, store.ErrNotFound) {
		return progress.LearnerStats{LearnerID: learnerID}, nil
	}
	return stats, err
}

// applyStats folds ev into the learner's stats and saves them.
func applyStats(ctx context.Context, q *store.Queries, learnerID string, ev progress.Event, today time.Time) (progress.LearnerStats, error) {
	stats, err := loadStats(ctx, q, learnerID)
	if err != nil {
		return stats, err
	}
	stats, err = progress.ApplyOn(stats, ev, today)
	if err != nil {
		return stats, err
	}
	return stats, q.SaveStats(ctx, stats)
}

func (e *Engine) finish(kind string, start time.Time, err error, attrs ...any) {
	e.metrics.Observe(kind, start, err)
	if err == nil {
		e.logger.Debug("event applied", append([]any{"kind", kind}, attrs...)...)
		return
	}
	attrs = append(attrs, "kind", kind, "class", string(fault.ClassOf(err)), "error", err)
	if fault.ClassOf(err) == fault.ClassInternal {
		e.logger.Error("event failed", attrs...)
		return
	}
	e.logger.Warn("event rejected", attrs...)
}
