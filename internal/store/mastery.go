package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/mastery"
)

type masteryRow struct {
	LearnerID      string         `db:"learner_id"`
	QuestionID     string         `db:"question_id"`
	Level          int            `db:"level"`
	ReviewCount    int            `db:"review_count"`
	NextReviewDate sql.NullString `db:"next_review_date"`
}

func (r masteryRow) record() (mastery.Record, error) {
	next, err := parseNullDate(r.NextReviewDate)
	if err != nil {
		return mastery.Record{}, fmt.Errorf("decode mastery %s/%s: %w", r.LearnerID, r.QuestionID, err)
	}
	return mastery.Record{
		LearnerID:      r.LearnerID,
		QuestionID:     r.QuestionID,
		Level:          r.Level,
		ReviewCount:    r.ReviewCount,
		NextReviewDate: next,
	}, nil
}

func (q *Queries) selectMastery() *entsql.Selector {
	return q.builder().Select("learner_id", "question_id", "level", "review_count", "next_review_date").
		From(entsql.Table(masteryRecordsTable.Name))
}

// GetMastery returns the record of a learner × question pair, or ErrNotFound.
func (q *Queries) GetMastery(ctx context.Context, learnerID, questionID string) (mastery.Record, error) {
	query, args := q.selectMastery().
		Where(entsql.And(entsql.EQ("learner_id", learnerID), entsql.EQ("question_id", questionID))).
		Query()

	var row masteryRow
	if err := sqlx.GetContext(ctx, q.ex, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mastery.Record{}, ErrNotFound
		}
		return mastery.Record{}, fmt.Errorf("get mastery: %w", err)
	}
	return row.record()
}

// SaveMastery inserts or replaces a mastery record.
func (q *Queries) SaveMastery(ctx context.Context, r mastery.Record) error {
	query, args := q.builder().Insert(masteryRecordsTable.Name).
		Columns("learner_id", "question_id", "level", "review_count", "next_review_date").
		Values(r.LearnerID, r.QuestionID, r.Level, r.ReviewCount, nullDate(r.NextReviewDate)).
		OnConflict(entsql.ConflictColumns("learner_id", "question_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save mastery: %w", err)
	}
	return nil
}

// ListMastery returns every mastery record of a learner ordered by question id.
func (q *Queries) ListMastery(ctx context.Context, learnerID string) ([]mastery.Record, error) {
	query, args := q.selectMastery().
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("question_id").
		Query()
	return q.masteryRecords(ctx, query, args)
}

// DueMastery returns the learner's questions due on or before day.
// Questions never answered have no date and are always due.
func (q *Queries) DueMastery(ctx context.Context, learnerID string, day time.Time) ([]mastery.Record, error) {
	query, args := q.selectMastery().
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.Or(
				entsql.IsNull("next_review_date"),
				entsql.LTE("next_review_date", clock.FormatDate(day)),
			),
		)).
		OrderBy("next_review_date", "question_id").
		Query()
	return q.masteryRecords(ctx, query, args)
}

func (q *Queries) masteryRecords(ctx context.Context, query string, args []any) ([]mastery.Record, error) {
	var rows []masteryRow
	if err := sqlx.SelectContext(ctx, q.ex, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	out := make([]mastery.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
