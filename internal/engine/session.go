package engine

import (
	"context"
	"time"

	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
)

// CompleteSession scores a finished practice test and stores the result.
// Answers that name a question also move that question's mastery record.
// The session counts once toward the learner's stats with its totals.
func (e *Engine) CompleteSession(ctx context.Context, learnerID string, answers []session.Answer) (res store.SessionResult, err error) {
	start := time.Now()
	defer func() { e.finish(metrics.KindSession, start, err, "learner", learnerID, "answers", len(answers)) }()

	if err := requireID("learner", learnerID); err != nil {
		return res, err
	}
	outcome, err := e.scorer.Score(answers)
	if err != nil {
		return res, err
	}

	unlock := e.locks.Lock(learnerID)
	defer unlock()

	today := e.today()
	err = e.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		res, err = q.SaveSession(ctx, learnerID, outcome, e.clock.Now())
		if err != nil {
			return err
		}
		for _, a := range answers {
			if a.QuestionID == "" {
				continue
			}
			if _, err := e.recordMastery(ctx, q, learnerID, a.QuestionID, a.Correct, res.ID, today); err != nil {
				return err
			}
		}
		_, err = applyStats(ctx, q, learnerID, progress.SessionCompletedEvent{
			Attempted: outcome.Total.Attempted,
			Correct:   outcome.Total.Correct,
		}, today)
		return err
	})
	return res, err
}
