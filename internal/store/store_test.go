package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/spacedrep"
)

var today = time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaVersionStamped(t *testing.T) {
	s := openTestStore(t)
	v, err := s.StoredVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		stored  string
		wantErr bool
	}{
		{"v1.0.0", false},
		{SchemaVersion, false},
		{"v1.9.0", true},
		{"v2.0.0", true},
		{"v0.3.0", true},
		{"one", true},
	}
	for _, tt := range tests {
		err := compatible(tt.stored, SchemaVersion)
		if (err != nil) != tt.wantErr {
			t.Errorf("compatible(%q) error = %v, wantErr %v", tt.stored, err, tt.wantErr)
		}
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		err := s.InTx(ctx, func(q *Queries) error {
			seq, err := q.next(ctx)
			if err != nil {
				return err
			}
			if seq <= last {
				t.Errorf("sequence %d not above %d", seq, last)
			}
			last = seq
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), last)
}

func TestCardRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := s.Queries()

	_, err := q.GetCard(ctx, "l1", "apple")
	assert.ErrorIs(t, err, ErrNotFound)

	card := spacedrep.NewCard("l1", "apple", today)
	card.Status = spacedrep.StatusReviewing
	card.IntervalDays = 6
	card.ReviewCount = 3
	card.NextReviewDate = clock.AddDays(today, 6)
	card.LastResult = spacedrep.GradeGood
	require.NoError(t, q.SaveCard(ctx, card))

	got, err := q.GetCard(ctx, "l1", "apple")
	require.NoError(t, err)
	assert.Equal(t, card, got)

	card.IntervalDays = 15
	require.NoError(t, q.SaveCard(ctx, card))
	got, err = q.GetCard(ctx, "l1", "apple")
	require.NoError(t, err)
	assert.Equal(t, 15, got.IntervalDays)
}

func TestDueCards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := s.Queries()

	for i, item := range []string{"a", "b", "c", "d"} {
		c := spacedrep.NewCard("l1", item, clock.AddDays(today, -10))
		c.NextReviewDate = clock.AddDays(today, i-2) // a: -2, b: -1, c: 0, d: +1
		require.NoError(t, q.SaveCard(ctx, c))
	}
	require.NoError(t, q.SaveCard(ctx, spacedrep.NewCard("l2", "z", clock.AddDays(today, -30))))

	due, err := q.DueCards(ctx, "l1", today)
	require.NoError(t, err)
	var items []string
	for _, c := range due {
		items = append(items, c.ItemID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, items)

	all, err := q.ListCards(ctx, "l1")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMasteryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := s.Queries()

	_, err := q.GetMastery(ctx, "l1", "q1")
	assert.ErrorIs(t, err, ErrNotFound)

	fresh := mastery.NewRecord("l1", "q1")
	require.NoError(t, q.SaveMastery(ctx, fresh))
	got, err := q.GetMastery(ctx, "l1", "q1")
	require.NoError(t, err)
	assert.Nil(t, got.NextReviewDate)

	next := clock.AddDays(today, 4)
	answered := mastery.Record{LearnerID: "l1", QuestionID: "q2", Level: 2, ReviewCount: 3, NextReviewDate: &next}
	require.NoError(t, q.SaveMastery(ctx, answered))
	got, err = q.GetMastery(ctx, "l1", "q2")
	require.NoError(t, err)
	assert.Equal(t, answered, got)

	due, err := q.DueMastery(ctx, "l1", today)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "q1", due[0].QuestionID)

	all, err := q.ListMastery(ctx, "l1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStatsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := s.Queries()

	_, err := q.GetStats(ctx, "l1")
	assert.ErrorIs(t, err, ErrNotFound)

	last := today
	stats := progress.LearnerStats{
		LearnerID: "l1", TotalAnswered: 12, TotalCorrect: 9,
		StreakDays: 3, LongestStreak: 5, SessionsCompleted: 1, LastActivityDate: &last,
	}
	require.NoError(t, q.SaveStats(ctx, stats))
	require.NoError(t, q.SaveStats(ctx, progress.LearnerStats{LearnerID: "l0"}))

	got, err := q.GetStats(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, stats, got)

	ids, err := q.ListLearners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"l0", "l1"}, ids)
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	scorer, err := session.NewScorer(session.DefaultThresholds())
	require.NoError(t, err)
	var answers []session.Answer
	for i := 0; i < 10; i++ {
		answers = append(answers, session.Answer{Section: 1, Correct: i < 3})
		answers = append(answers, session.Answer{Section: 5, Correct: i < 9})
		answers = append(answers, session.Answer{Section: 3, Correct: i < 7})
	}
	out, err := scorer.Score(answers)
	require.NoError(t, err)

	var saved SessionResult
	require.NoError(t, s.InTx(ctx, func(q *Queries) error {
		var err error
		saved, err = q.SaveSession(ctx, "l1", out, time.Now())
		return err
	}))
	assert.NotEmpty(t, saved.ID)

	got, err := s.Queries().Sessions(ctx, "l1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saved.ID, got[0].ID)
	assert.Equal(t, out.PerSection, got[0].Outcome.PerSection)
	assert.Equal(t, []session.Section{1}, got[0].Outcome.Weak)
	assert.Equal(t, []session.Section{5}, got[0].Outcome.Strong)
	assert.Equal(t, []session.Section{3}, got[0].Outcome.Neutral)
	assert.Equal(t, 30, got[0].Outcome.Total.Attempted)
}

func TestInTxRollback(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(q *Queries) error {
		if err := q.SaveCard(ctx, spacedrep.NewCard("l1", "x", today)); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, err = s.Queries().GetCard(ctx, "l1", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryOrderingAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.InTx(ctx, func(q *Queries) error {
		if err := q.AppendReviewEvent(ctx, &ReviewEvent{
			LearnerID: "l1", ItemID: "apple", Grade: "good", FromStatus: "learning",
			ToStatus: "reviewing", IntervalDays: 3, EaseFactor: 2.5, NextReviewDate: "2025-05-15", RecordedAt: at,
		}); err != nil {
			return err
		}
		if err := q.AppendAnswerEvent(ctx, &AnswerEvent{
			LearnerID: "l1", QuestionID: "q1", Correct: true, FromLevel: 0, ToLevel: 1, RecordedAt: at.Add(time.Minute),
		}); err != nil {
			return err
		}
		if err := q.AppendAnswerEvent(ctx, &AnswerEvent{
			LearnerID: "l2", QuestionID: "q1", RecordedAt: at.Add(2 * time.Minute),
		}); err != nil {
			return err
		}
		return q.AppendReviewEvent(ctx, &ReviewEvent{
			LearnerID: "l1", ItemID: "pear", Grade: "again", FromStatus: "reviewing",
			ToStatus: "learning", IntervalDays: 1, EaseFactor: 2.3, NextReviewDate: "2025-05-13", RecordedAt: at.Add(3 * time.Minute),
		})
	}))

	q := s.Queries()
	entries, err := q.History(ctx, "l1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "pear", entries[0].Subject)
	assert.Equal(t, KindAnswer, entries[1].Kind)
	assert.Equal(t, "apple", entries[2].Subject)
	assert.Greater(t, entries[0].Sequence, entries[1].Sequence)

	limited, err := q.History(ctx, "l1", QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := q.History(ctx, "l1", QueryOpts{After: entries[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "pear", after[0].Subject)

	answers, err := q.AnswerEvents(ctx, "l1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.True(t, answers[0].Correct)
}
