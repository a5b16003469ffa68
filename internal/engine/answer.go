package engine

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/store"
)

// RecordAnswer applies one answered question to its mastery record and
// to the learner's stats.
func (e *Engine) RecordAnswer(ctx context.Context, learnerID, questionID string, correct bool) (rec mastery.Record, err error) {
	start := time.Now()
	defer func() { e.finish(metrics.KindAnswer, start, err, "learner", learnerID, "question", questionID) }()

	if err := requireID("learner", learnerID); err != nil {
		return rec, err
	}
	if err := requireID("question", questionID); err != nil {
		return rec, err
	}

	unlock := e.locks.Lock(learnerID)
	defer unlock()

	today := e.today()
	err = e.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		rec, err = e.recordMastery(ctx, q, learnerID, questionID, correct, "", today)
		if err != nil {
			return err
		}
		_, err = applyStats(ctx, q, learnerID, progress.AttemptEvent{Correct: correct}, today)
		return err
	})
	return rec, err
}

// recordMastery updates one mastery record and appends its answer event.
func (e *Engine) recordMastery(ctx context.Context, q *store.Queries, learnerID, questionID string, correct bool, sessionID string, today time.Time) (mastery.Record, error) {
	prev, err := q.GetMastery(ctx, learnerID, questionID)
	if errors.Is(err, store.ErrNotFound) {
		prev = mastery.NewRecord(learnerID, questionID)
	} else if err != nil {
		return prev, err
	}

	rec, err := mastery.RecordOn(prev, correct, today, e.tracker.Table())
	if err != nil {
		return rec, err
	}
	if err := q.SaveMastery(ctx, rec); err != nil {
		return rec, err
	}
	err = q.AppendAnswerEvent(ctx, &store.AnswerEvent{
		LearnerID:  learnerID,
		QuestionID: questionID,
		Correct:    correct,
		FromLevel:  prev.Level,
		ToLevel:    rec.Level,
		SessionID:  sessionID,
		RecordedAt: e.clock.Now(),
	})
	return rec, err
}
