package engine

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/spacedrep"
	"github.com/abhisek/lexis/internal/store"
)

// GradeCard grades a learner's vocabulary card, creating the card on its
// first review. The grading also counts as an attempt in the learner's
// stats: anything but Again is correct.
func (e *Engine) GradeCard(ctx context.Context, learnerID, itemID string, g spacedrep.Grade) (card spacedrep.ReviewCard, err error) {
	start := time.Now()
	defer func() { e.finish(metrics.KindReview, start, err, "learner", learnerID, "item", itemID, "grade", string(g)) }()

	if err := requireID("learner", learnerID); err != nil {
		return card, err
	}
	if err := requireID("item", itemID); err != nil {
		return card, err
	}
	if _, err := spacedrep.ParseGrade(string(g)); err != nil {
		return card, err
	}

	unlock := e.locks.Lock(learnerID)
	defer unlock()

	today := e.today()
	err = e.store.InTx(ctx, func(q *store.Queries) error {
		prev, err := q.GetCard(ctx, learnerID, itemID)
		if errors.Is(err, store.ErrNotFound) {
			prev = spacedrep.NewCard(learnerID, itemID, today)
		} else if err != nil {
			return err
		}

		card, err = spacedrep.GradeOn(prev, g, today)
		if err != nil {
			return err
		}
		if err := q.SaveCard(ctx, card); err != nil {
			return err
		}
		if err := q.AppendReviewEvent(ctx, &store.ReviewEvent{
			LearnerID:      learnerID,
			ItemID:         itemID,
			Grade:          string(g),
			FromStatus:     string(prev.Status),
			ToStatus:       string(card.Status),
			IntervalDays:   card.IntervalDays,
			EaseFactor:     card.EaseFactor,
			NextReviewDate: clock.FormatDate(card.NextReviewDate),
			RecordedAt:     e.clock.Now(),
		}); err != nil {
			return err
		}
		_, err = applyStats(ctx, q, learnerID, progress.AttemptEvent{Correct: g != spacedrep.GradeAgain}, today)
		return err
	})
	return card, err
}
