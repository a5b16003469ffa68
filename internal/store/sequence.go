package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// The global sequence orders events across review_events, answer_events
// and session_results. Per-table keys cannot establish cross-table order,
// so every append draws from this single counter inside its transaction.

func (q *Queries) seedSequence(ctx context.Context) error {
	query, args := q.builder().Insert(globalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// next atomically returns the next sequence number and increments the
// counter. The row lock taken by UPDATE serializes concurrent writers.
func (q *Queries) next(ctx context.Context) (int64, error) {
	var seq int64
	err := q.ex.QueryRowxContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
