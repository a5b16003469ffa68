package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexis/internal/progress"
)

type statsRow struct {
	LearnerID         string         `db:"learner_id"`
	TotalAnswered     int            `db:"total_answered"`
	TotalCorrect      int            `db:"total_correct"`
	StreakDays        int            `db:"streak_days"`
	LongestStreak     int            `db:"longest_streak"`
	SessionsCompleted int            `db:"sessions_completed"`
	LastActivityDate  sql.NullString `db:"last_activity_date"`
}

// GetStats returns a learner's stats, or ErrNotFound before any activity.
func (q *Queries) GetStats(ctx context.Context, learnerID string) (progress.LearnerStats, error) {
	query, args := q.builder().Select(
		"learner_id", "total_answered", "total_correct", "streak_days",
		"longest_streak", "sessions_completed", "last_activity_date",
	).
		From(entsql.Table(learnerStatsTable.Name)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	var row statsRow
	if err := sqlx.GetContext(ctx, q.ex, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progress.LearnerStats{}, ErrNotFound
		}
		return progress.LearnerStats{}, fmt.Errorf("get stats: %w", err)
	}

	last, err := parseNullDate(row.LastActivityDate)
	if err != nil {
		return progress.LearnerStats{}, fmt.Errorf("decode stats %s: %w", row.LearnerID, err)
	}
	return progress.LearnerStats{
		LearnerID:         row.LearnerID,
		TotalAnswered:     row.TotalAnswered,
		TotalCorrect:      row.TotalCorrect,
		StreakDays:        row.StreakDays,
		LongestStreak:     row.LongestStreak,
		SessionsCompleted: row.SessionsCompleted,
		LastActivityDate:  last,
	}, nil
}

// SaveStats inserts or replaces a learner's stats.
func (q *Queries) SaveStats(ctx context.Context, s progress.LearnerStats) error {
	query, args := q.builder().Insert(learnerStatsTable.Name).
		Columns(
			"learner_id", "total_answered", "total_correct", "streak_days",
			"longest_streak", "sessions_completed", "last_activity_date",
		).
		Values(
			s.LearnerID, s.TotalAnswered, s.TotalCorrect, s.StreakDays,
			s.LongestStreak, s.SessionsCompleted, nullDate(s.LastActivityDate),
		).
		OnConflict(entsql.ConflictColumns("learner_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// ListLearners returns the id of every learner with recorded activity.
func (q *Queries) ListLearners(ctx context.Context) ([]string, error) {
	query, args := q.builder().Select("learner_id").
		From(entsql.Table(learnerStatsTable.Name)).
		OrderBy("learner_id").
		Query()
	var ids []string
	if err := sqlx.SelectContext(ctx, q.ex, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	return ids, nil
}
