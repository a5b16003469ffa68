package store

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Kinds of history entries.
const (
	KindReview  = "review"
	KindAnswer  = "answer"
	KindSession = "session"
)

// HistoryEntry is one event of a learner's merged, ordered history.
type HistoryEntry struct {
	Sequence   int64     `json:"sequence"`
	Kind       string    `json:"kind"`
	Subject    string    `json:"subject"`
	Detail     string    `json:"detail"`
	RecordedAt time.Time `json:"recorded_at"`
}

// History merges review, answer and session events of a learner, newest
// first. Limit applies to the merged result.
func (q *Queries) History(ctx context.Context, learnerID string, opts QueryOpts) ([]HistoryEntry, error) {
	reviews, err := q.ReviewEvents(ctx, learnerID, opts)
	if err != nil {
		return nil, err
	}
	answers, err := q.AnswerEvents(ctx, learnerID, opts)
	if err != nil {
		return nil, err
	}
	sessions, err := q.Sessions(ctx, learnerID, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(reviews)+len(answers)+len(sessions))
	for _, e := range reviews {
		entries = append(entries, HistoryEntry{
			Sequence: e.Sequence,
			Kind:     KindReview,
			Subject:  e.ItemID,
			Detail: fmt.Sprintf("%s: %s → %s, next in %dd (ease %.2f)",
				e.Grade, e.FromStatus, e.ToStatus, e.IntervalDays, e.EaseFactor),
			RecordedAt: e.RecordedAt,
		})
	}
	for _, e := range answers {
		verdict := "incorrect"
		if e.Correct {
			verdict = "correct"
		}
		entries = append(entries, HistoryEntry{
			Sequence:   e.Sequence,
			Kind:       KindAnswer,
			Subject:    e.QuestionID,
			Detail:     fmt.Sprintf("%s: level %d → %d", verdict, e.FromLevel, e.ToLevel),
			RecordedAt: e.RecordedAt,
		})
	}
	for _, s := range sessions {
		entries = append(entries, HistoryEntry{
			Sequence: s.Sequence,
			Kind:     KindSession,
			Subject:  s.ID,
			Detail: fmt.Sprintf("%d/%d correct, %d weak, %d strong",
				s.Outcome.Total.Correct, s.Outcome.Total.Attempted, len(s.Outcome.Weak), len(s.Outcome.Strong)),
			RecordedAt: s.RecordedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence > entries[j].Sequence })
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}
