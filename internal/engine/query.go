package engine

import (
	"context"
	"errors"

	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/spacedrep"
	"github.com/abhisek/lexis/internal/store"
)

// Stats returns a learner's stats, or store.ErrNotFound before any activity.
func (e *Engine) Stats(ctx context.Context, learnerID string) (progress.LearnerStats, error) {
	if err := requireID("learner", learnerID); err != nil {
		return progress.LearnerStats{}, err
	}
	return e.store.Queries().GetStats(ctx, learnerID)
}

// DueList is what a learner should practice today.
type DueList struct {
	LearnerID string               `json:"learner_id"`
	Cards     []spacedrep.ReviewCard `json:"cards"`
	Questions []mastery.Record     `json:"questions"`
}

// Due returns the learner's due cards, most overdue first, and due
// questions.
func (e *Engine) Due(ctx context.Context, learnerID string) (DueList, error) {
	if err := requireID("learner", learnerID); err != nil {
		return DueList{}, err
	}
	today := e.today()
	q := e.store.Queries()

	cards, err := q.DueCards(ctx, learnerID, today)
	if err != nil {
		return DueList{}, err
	}
	questions, err := q.DueMastery(ctx, learnerID, today)
	if err != nil {
		return DueList{}, err
	}
	return DueList{LearnerID: learnerID, Cards: cards, Questions: questions}, nil
}

// History returns the learner's merged event history, newest first.
func (e *Engine) History(ctx context.Context, learnerID string, opts store.QueryOpts) ([]store.HistoryEntry, error) {
	if err := requireID("learner", learnerID); err != nil {
		return nil, err
	}
	return e.store.Queries().History(ctx, learnerID, opts)
}

// Snapshot is everything stored for one learner.
type Snapshot struct {
	LearnerID string                 `json:"learner_id"`
	Stats     *progress.LearnerStats `json:"stats,omitempty"`
	Cards     []spacedrep.ReviewCard `json:"cards"`
	Mastery   []mastery.Record       `json:"mastery"`
	Sessions  []store.SessionResult  `json:"sessions"`
}

// Snapshot reads a consistent view of a learner's records.
func (e *Engine) Snapshot(ctx context.Context, learnerID string) (Snapshot, error) {
	if err := requireID("learner", learnerID); err != nil {
		return Snapshot{}, err
	}

	unlock := e.locks.Lock(learnerID)
	defer unlock()

	snap := Snapshot{LearnerID: learnerID}
	err := e.store.InTx(ctx, func(q *store.Queries) error {
		stats, err := q.GetStats(ctx, learnerID)
		switch {
		case err == nil:
			snap.Stats = &stats
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		if snap.Cards, err = q.ListCards(ctx, learnerID); err != nil {
			return err
		}
		if snap.Mastery, err = q.ListMastery(ctx, learnerID); err != nil {
			return err
		}
		snap.Sessions, err = q.Sessions(ctx, learnerID, store.QueryOpts{})
		return err
	})
	return snap, err
}
