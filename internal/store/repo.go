package store

import (
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexis/internal/clock"
)

// Queries reads and writes domain records. It is bound either to the
// database or to a transaction opened by Store.InTx.
type Queries struct {
	ex      sqlx.ExtContext
	dialect string
}

func (q *Queries) builder() *entsql.DialectBuilder {
	return entsql.Dialect(q.dialect)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // recorded_at >= From
	To     time.Time // recorded_at <= To
}

func (o QueryOpts) predicates() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE("recorded_at", o.From))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LTE("recorded_at", o.To))
	}
	return ps
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: clock.FormatDate(*t), Valid: true}
}

func parseNullDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := clock.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
