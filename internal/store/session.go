package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/lexis/internal/session"
)

// Section bands as stored in section_scores.
const (
	BandWeak    = "weak"
	BandNeutral = "neutral"
	BandStrong  = "strong"
)

// SessionResult is a persisted practice-test outcome.
type SessionResult struct {
	ID         string           `json:"id"`
	Sequence   int64            `json:"sequence"`
	LearnerID  string           `json:"learner_id"`
	Outcome    *session.Outcome `json:"outcome"`
	RecordedAt time.Time        `json:"recorded_at"`
}

type sessionRow struct {
	ID         string    `db:"id"`
	Sequence   int64     `db:"sequence"`
	LearnerID  string    `db:"learner_id"`
	Attempted  int       `db:"attempted"`
	Correct    int       `db:"correct"`
	RecordedAt time.Time `db:"recorded_at"`
}

type sectionRow struct {
	SessionID string `db:"session_id"`
	Section   int    `db:"section"`
	Correct   int    `db:"correct"`
	Attempted int    `db:"attempted"`
	Band      string `db:"band"`
	Position  int    `db:"position"`
}

// SaveSession stores a scored session under a new id and sequence.
func (q *Queries) SaveSession(ctx context.Context, learnerID string, out *session.Outcome, at time.Time) (SessionResult, error) {
	seq, err := q.next(ctx)
	if err != nil {
		return SessionResult{}, err
	}
	res := SessionResult{
		ID:         uuid.NewString(),
		Sequence:   seq,
		LearnerID:  learnerID,
		Outcome:    out,
		RecordedAt: at.UTC(),
	}

	query, args := q.builder().Insert(sessionResultsTable.Name).
		Columns("id", "sequence", "learner_id", "attempted", "correct", "recorded_at").
		Values(res.ID, res.Sequence, learnerID, out.Total.Attempted, out.Total.Correct, res.RecordedAt).
		Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return SessionResult{}, fmt.Errorf("save session: %w", err)
	}

	rows := sectionRows(res.ID, out)
	if len(rows) == 0 {
		return res, nil
	}
	ins := q.builder().Insert(sectionScoresTable.Name).
		Columns("session_id", "section", "correct", "attempted", "band", "position")
	for _, r := range rows {
		ins = ins.Values(r.SessionID, r.Section, r.Correct, r.Attempted, r.Band, r.Position)
	}
	query, args = ins.Query()
	if _, err := q.ex.ExecContext(ctx, query, args...); err != nil {
		return SessionResult{}, fmt.Errorf("save section scores: %w", err)
	}
	return res, nil
}

func sectionRows(id string, out *session.Outcome) []sectionRow {
	var rows []sectionRow
	add := func(band string, ids []session.Section) {
		for pos, s := range ids {
			sc := out.PerSection[s]
			rows = append(rows, sectionRow{
				SessionID: id,
				Section:   int(s),
				Correct:   sc.Correct,
				Attempted: sc.Attempted,
				Band:      band,
				Position:  pos,
			})
		}
	}
	add(BandWeak, out.Weak)
	add(BandNeutral, out.Neutral)
	add(BandStrong, out.Strong)
	return rows
}

// Sessions returns a learner's sessions, newest first.
func (q *Queries) Sessions(ctx context.Context, learnerID string, opts QueryOpts) ([]SessionResult, error) {
	sel := q.builder().Select("id", "sequence", "learner_id", "attempted", "correct", "recorded_at").
		From(entsql.Table(sessionResultsTable.Name))
	query, args := eventQuery(sel, learnerID, opts)

	var rows []sessionRow
	if err := sqlx.SelectContext(ctx, q.ex, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	out := make([]SessionResult, 0, len(rows))
	for _, r := range rows {
		outcome, err := q.outcome(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, SessionResult{
			ID:         r.ID,
			Sequence:   r.Sequence,
			LearnerID:  r.LearnerID,
			Outcome:    outcome,
			RecordedAt: r.RecordedAt,
		})
	}
	return out, nil
}

func (q *Queries) outcome(ctx context.Context, r sessionRow) (*session.Outcome, error) {
	query, args := q.builder().Select("session_id", "section", "correct", "attempted", "band", "position").
		From(entsql.Table(sectionScoresTable.Name)).
		Where(entsql.EQ("session_id", r.ID)).
		Query()
	var rows []sectionRow
	if err := sqlx.SelectContext(ctx, q.ex, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query section scores: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	out := &session.Outcome{
		PerSection: make(map[session.Section]session.SectionScore, len(rows)),
		Weak:       []session.Section{},
		Strong:     []session.Section{},
		Neutral:    []session.Section{},
		Total:      session.SectionScore{Correct: r.Correct, Attempted: r.Attempted},
	}
	for _, row := range rows {
		s := session.Section(row.Section)
		out.PerSection[s] = session.SectionScore{Correct: row.Correct, Attempted: row.Attempted}
		switch row.Band {
		case BandWeak:
			out.Weak = append(out.Weak, s)
		case BandStrong:
			out.Strong = append(out.Strong, s)
		default:
			out.Neutral = append(out.Neutral, s)
		}
	}
	return out, nil
}
