package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// ReviewEvent records one vocabulary card grading.
type ReviewEvent struct {
	Sequence       int64     `db:"sequence" json:"sequence"`
	LearnerID      string    `db:"learner_id" json:"learner_id"`
	ItemID         string    `db:"item_id" json:"item_id"`
	Grade          string    `db:"grade" json:"grade"`
	FromStatus     string    `db:"from_status" json:"from_status"`
	ToStatus       string    `db:"to_status" json:"to_status"`
	IntervalDays   int       `db:"interval_days" json:"interval_days"`
	EaseFactor     float64   `db:"ease_factor" json:"ease_factor"`
	NextReviewDate string    `db:"next_review_date" json:"next_review_date"`
	RecordedAt     time.Time `db:"recorded_at" json:"recorded_at"`
}

// AnswerEvent records one question answer and its mastery transition.
type AnswerEvent struct {
	Sequence   int64     `db:"sequence" json:"sequence"`
	LearnerID  string    `db:"learner_id" json:"learner_id"`
	QuestionID string    `db:"question_id" json:"question_id"`
	Correct    bool      `db:"correct" json:"correct"`
	FromLevel  int       `db:"from_level" json:"from_level"`
	ToLevel    int       `db:"to_level" json:"to_level"`
	SessionID  string    `db:"session_id" json:"session_id,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// AppendReviewEvent assigns the next sequence to ev and stores it.
func (q *Queries) AppendReviewEvent(ctx context.Context, ev *ReviewEvent) error {
	seq, err := q.next(ctx)
	if err != nil {
		return err
	}
	ev.Sequence = seq
	ev.RecordedAt = ev.RecordedAt.UTC()

	query, args := q.builder().Insert(reviewEventsTable.Name).
		Columns(
			"sequence", "learner_id", "item_id", "grade", "from_status", "to_status",
			"interval_days", "ease_factor", "next_review_date", "recorded_at",
		).
		Values(
			ev.Sequence, ev.LearnerID, ev.ItemID, ev.Grade, ev.FromStatus, ev.ToStatus,
			ev.IntervalDays, ev.EaseFactor, ev.NextReviewDate, ev.RecordedAt,
		).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

// AppendAnswerEvent assigns the next sequence to ev and stores it.
func (q *Queries) AppendAnswerEvent(ctx context.Context, ev *AnswerEvent) error {
	seq, err := q.next(ctx)
	if err != nil {
		return err
	}
	ev.Sequence = seq
	ev.RecordedAt = ev.RecordedAt.UTC()

	query, args := q.builder().Insert(answerEventsTable.Name).
		Columns(
			"sequence", "learner_id", "question_id", "correct",
			"from_level", "to_level", "session_id", "recorded_at",
		).
		Values(
			ev.Sequence, ev.LearnerID, ev.QuestionID, ev.Correct,
			ev.FromLevel, ev.ToLevel, ev.SessionID, ev.RecordedAt,
		).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// ReviewEvents returns a learner's review events, newest first.
func (q *Queries) ReviewEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]ReviewEvent, error) {
	sel := q.builder().Select(
		"sequence", "learner_id", "item_id", "grade", "from_status", "to_status",
		"interval_days", "ease_factor", "next_review_date", "recorded_at",
	).From(entsql.Table(reviewEventsTable.Name))
	query, args := eventQuery(sel, learnerID, opts)

	var events []ReviewEvent
	if err := sqlx.SelectContext(ctx, q.ex, &events, query, args...); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}
	return events, nil
}

// AnswerEvents returns a learner's answer events, newest first.
func (q *Queries) AnswerEvents(ctx context.Context, learnerID string, opts QueryOpts) ([]AnswerEvent, error) {
	sel := q.builder().Select(
		"sequence", "learner_id", "question_id", "correct",
		"from_level", "to_level", "session_id", "recorded_at",
	).From(entsql.Table(answerEventsTable.Name))
	query, args := eventQuery(sel, learnerID, opts)

	var events []AnswerEvent
	if err := sqlx.SelectContext(ctx, q.ex, &events, query, args...); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return events, nil
}

func eventQuery(sel *entsql.Selector, learnerID string, opts QueryOpts) (string, []any) {
	preds := append([]*entsql.Predicate{entsql.EQ("learner_id", learnerID)}, opts.predicates()...)
	sel = sel.Where(entsql.And(preds...)).OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel.Query()
}
