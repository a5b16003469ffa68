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
	"github.com/abhisek/lexis/internal/spacedrep"
)

type cardRow struct {
	LearnerID      string  `db:"learner_id"`
	ItemID         string  `db:"item_id"`
	Status         string  `db:"status"`
	IntervalDays   int     `db:"interval_days"`
	EaseFactor     float64 `db:"ease_factor"`
	ReviewCount    int     `db:"review_count"`
	NextReviewDate string  `db:"next_review_date"`
	LastResult     string  `db:"last_result"`
	CreatedOn      string  `db:"created_on"`
}

func (r cardRow) card() (spacedrep.ReviewCard, error) {
	next, err := clock.ParseDate(r.NextReviewDate)
	if err != nil {
		return spacedrep.ReviewCard{}, fmt.Errorf("decode card %s/%s: %w", r.LearnerID, r.ItemID, err)
	}
	created, err := clock.ParseDate(r.CreatedOn)
	if err != nil {
		return spacedrep.ReviewCard{}, fmt.Errorf("decode card %s/%s: %w", r.LearnerID, r.ItemID, err)
	}
	return spacedrep.ReviewCard{
		LearnerID:      r.LearnerID,
		ItemID:         r.ItemID,
		Status:         spacedrep.Status(r.Status),
		IntervalDays:   r.IntervalDays,
		EaseFactor:     r.EaseFactor,
		ReviewCount:    r.ReviewCount,
		NextReviewDate: next,
		LastResult:     spacedrep.Grade(r.LastResult),
		CreatedOn:      created,
	}, nil
}

func (q *Queries) selectCards() *entsql.Selector {
	return q.builder().Select(
		"learner_id", "item_id", "status", "interval_days", "ease_factor",
		"review_count", "next_review_date", "last_result", "created_on",
	).From(entsql.Table(reviewCardsTable.Name))
}

// GetCard returns the card of a learner × item pair, or ErrNotFound.
func (q *Queries) GetCard(ctx context.Context, learnerID, itemID string) (spacedrep.ReviewCard, error) {
	query, args := q.selectCards().
		Where(entsql.And(entsql.EQ("learner_id", learnerID), entsql.EQ("item_id", itemID))).
		Query()

	var row cardRow
	if err := sqlx.GetContext(ctx, q.ex, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return spacedrep.ReviewCard{}, ErrNotFound
		}
		return spacedrep.ReviewCard{}, fmt.Errorf("get card: %w", err)
	}
	return row.card()
}

// SaveCard inserts or replaces a card.
func (q *Queries) SaveCard(ctx context.Context, c spacedrep.ReviewCard) error {
	query, args := q.builder().Insert(reviewCardsTable.Name).
		Columns(
			"learner_id", "item_id", "status", "interval_days", "ease_factor",
			"review_count", "next_review_date", "last_result", "created_on",
		).
		Values(
			c.LearnerID, c.ItemID, string(c.Status), c.IntervalDays, c.EaseFactor,
			c.ReviewCount, clock.FormatDate(c.NextReviewDate), string(c.LastResult), clock.FormatDate(c.CreatedOn),
		).
		OnConflict(entsql.ConflictColumns("learner_id", "item_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// ListCards returns every card of a learner ordered by item id.
func (q *Queries) ListCards(ctx context.Context, learnerID string) ([]spacedrep.ReviewCard, error) {
	query, args := q.selectCards().
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("item_id").
		Query()
	return q.cards(ctx, query, args)
}

// DueCards returns the learner's cards due on or before day, most overdue
// first.
func (q *Queries) DueCards(ctx context.Context, learnerID string, day time.Time) ([]spacedrep.ReviewCard, error) {
	query, args := q.selectCards().
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.LTE("next_review_date", clock.FormatDate(day)),
		)).
		Query()
	cards, err := q.cards(ctx, query, args)
	if err != nil {
		return nil, err
	}
	spacedrep.SortDue(cards, day)
	return cards, nil
}

func (q *Queries) cards(ctx context.Context, query string, args []any) ([]spacedrep.ReviewCard, error) {
	var rows []cardRow
	if err := sqlx.SelectContext(ctx, q.ex, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	out := make([]spacedrep.ReviewCard, 0, len(rows))
	for _, r := range rows {
		c, err := r.card()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
