package spacedrep

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

var today = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestScheduler() *Scheduler {
	return NewScheduler(clock.Fixed{T: today})
}

func reviewing(interval int, ease float64, count int) ReviewCard {
	return ReviewCard{
		LearnerID:      "learner-1",
		ItemID:         "word-1",
		Status:         StatusReviewing,
		IntervalDays:   interval,
		EaseFactor:     ease,
		ReviewCount:    count,
		NextReviewDate: day(2025, 3, 10),
		LastResult:     GradeGood,
		CreatedOn:      day(2025, 1, 1),
	}
}

func TestGrade_GoodExample(t *testing.T) {
	sched := newTestScheduler()
	got, err := sched.Grade(reviewing(6, 2.5, 3), GradeGood)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.IntervalDays != 15 {
		t.Errorf("IntervalDays = %d, want 15", got.IntervalDays)
	}
	if got.EaseFactor != 2.5 {
		t.Errorf("EaseFactor = %v, want 2.5", got.EaseFactor)
	}
	if got.ReviewCount != 4 {
		t.Errorf("ReviewCount = %d, want 4", got.ReviewCount)
	}
	if want := day(2025, 3, 25); !got.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", got.NextReviewDate, want)
	}
	if got.Status != StatusReviewing {
		t.Errorf("Status = %q, want reviewing", got.Status)
	}
	if got.LastResult != GradeGood {
		t.Errorf("LastResult = %q, want good", got.LastResult)
	}
}

func TestGrade_DoesNotMutateInput(t *testing.T) {
	in := reviewing(6, 2.5, 3)
	if _, err := newTestScheduler().Grade(in, GradeEasy); err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if in.IntervalDays != 6 || in.EaseFactor != 2.5 || in.ReviewCount != 3 {
		t.Errorf("input card was modified: %+v", in)
	}
}

func TestGrade_Again(t *testing.T) {
	got, err := newTestScheduler().Grade(reviewing(30, 2.5, 8), GradeAgain)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", got.IntervalDays)
	}
	if math.Abs(got.EaseFactor-2.3) > 1e-9 {
		t.Errorf("EaseFactor = %v, want 2.3", got.EaseFactor)
	}
	if got.Status != StatusLearning {
		t.Errorf("Status = %q, want learning", got.Status)
	}
	if want := day(2025, 3, 11); !got.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", got.NextReviewDate, want)
	}
}

func TestGrade_AgainEaseFloorHolds(t *testing.T) {
	sched := newTestScheduler()
	for _, ease := range []float64{1.3, 1.35, 1.45, 1.5, 2.0, 2.5, 4.2} {
		card := reviewing(10, ease, 4)
		for i := 0; i < 20; i++ {
			next, err := sched.Grade(card, GradeAgain)
			if err != nil {
				t.Fatalf("ease %v: Grade: %v", ease, err)
			}
			if next.EaseFactor < MinEaseFactor {
				t.Fatalf("ease %v after %d Again: EaseFactor = %v, below floor", ease, i+1, next.EaseFactor)
			}
			card = next
		}
		if card.EaseFactor != MinEaseFactor {
			t.Errorf("ease %v: EaseFactor = %v after repeated Again, want %v", ease, card.EaseFactor, MinEaseFactor)
		}
	}
}

func TestGrade_Hard(t *testing.T) {
	tests := []struct {
		name         string
		status       Status
		interval     int
		wantInterval int
		wantStatus   Status
	}{
		{"learning advances", StatusLearning, 1, 1, StatusReviewing},
		{"reviewing stays", StatusReviewing, 10, 12, StatusReviewing},
		{"mastered stays", StatusMastered, 40, 48, StatusMastered},
	}
	for _, tt := range tests {
		card := reviewing(tt.interval, 2.0, 6)
		card.Status = tt.status
		got, err := newTestScheduler().Grade(card, GradeHard)
		if err != nil {
			t.Fatalf("%s: Grade: %v", tt.name, err)
		}
		if got.IntervalDays != tt.wantInterval {
			t.Errorf("%s: IntervalDays = %d, want %d", tt.name, got.IntervalDays, tt.wantInterval)
		}
		if got.Status != tt.wantStatus {
			t.Errorf("%s: Status = %q, want %q", tt.name, got.Status, tt.wantStatus)
		}
		if math.Abs(got.EaseFactor-1.85) > 1e-9 {
			t.Errorf("%s: EaseFactor = %v, want 1.85", tt.name, got.EaseFactor)
		}
	}
}

func TestGrade_Easy(t *testing.T) {
	got, err := newTestScheduler().Grade(reviewing(10, 2.0, 2), GradeEasy)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.IntervalDays != 26 {
		t.Errorf("IntervalDays = %d, want 26", got.IntervalDays)
	}
	if math.Abs(got.EaseFactor-2.15) > 1e-9 {
		t.Errorf("EaseFactor = %v, want 2.15", got.EaseFactor)
	}
	// Interval qualifies but only 3 reviews so far.
	if got.Status != StatusReviewing {
		t.Errorf("Status = %q, want reviewing", got.Status)
	}
}

func TestGrade_FirstGradingTreatsIntervalAsOne(t *testing.T) {
	card := NewCard("learner-1", "word-1", day(2025, 3, 1))
	card.IntervalDays = 9 // stale stored default must be ignored
	got, err := newTestScheduler().Grade(card, GradeGood)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	// round(1 * 2.5) = 3
	if got.IntervalDays != 3 {
		t.Errorf("IntervalDays = %d, want 3", got.IntervalDays)
	}
	if got.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", got.ReviewCount)
	}
	if got.Status != StatusReviewing {
		t.Errorf("Status = %q, want reviewing", got.Status)
	}
}

func TestGrade_GoodTwiceStrictlyIncreases(t *testing.T) {
	sched := newTestScheduler()
	for _, ease := range []float64{1.3, 1.31, 1.5, 2.5, 3.7} {
		for _, interval := range []int{1, 2, 3, 7, 30} {
			card := reviewing(interval, ease, 1)
			first, err := sched.Grade(card, GradeGood)
			if err != nil {
				t.Fatalf("Grade: %v", err)
			}
			second, err := sched.Grade(first, GradeGood)
			if err != nil {
				t.Fatalf("Grade: %v", err)
			}
			if !(first.IntervalDays > interval && second.IntervalDays > first.IntervalDays) {
				t.Errorf("ease %v interval %d: intervals %d -> %d -> %d not strictly increasing",
					ease, interval, interval, first.IntervalDays, second.IntervalDays)
			}
		}
	}
}

func TestGrade_PromotesToMastered(t *testing.T) {
	got, err := newTestScheduler().Grade(reviewing(10, 2.5, 4), GradeGood)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.IntervalDays != 25 || got.ReviewCount != 5 {
		t.Fatalf("IntervalDays = %d, ReviewCount = %d", got.IntervalDays, got.ReviewCount)
	}
	if got.Status != StatusMastered {
		t.Errorf("Status = %q, want mastered", got.Status)
	}
}

func TestGrade_NotMasteredBelowReviewCount(t *testing.T) {
	got, err := newTestScheduler().Grade(reviewing(10, 2.5, 3), GradeGood)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.Status != StatusReviewing {
		t.Errorf("Status = %q, want reviewing", got.Status)
	}
}

func TestGrade_MasteredDemotedOnlyByAgain(t *testing.T) {
	sched := newTestScheduler()
	mastered := reviewing(30, 2.5, 9)
	mastered.Status = StatusMastered

	for _, g := range []Grade{GradeHard, GradeGood, GradeEasy} {
		got, err := sched.Grade(mastered, g)
		if err != nil {
			t.Fatalf("%s: Grade: %v", g, err)
		}
		if got.Status != StatusMastered {
			t.Errorf("%s: Status = %q, want mastered", g, got.Status)
		}
	}

	got, err := sched.Grade(mastered, GradeAgain)
	if err != nil {
		t.Fatalf("again: Grade: %v", err)
	}
	if got.Status != StatusLearning {
		t.Errorf("again: Status = %q, want learning", got.Status)
	}
}

func TestGrade_NextReviewIsIntervalAfterToday(t *testing.T) {
	sched := newTestScheduler()
	card := NewCard("learner-1", "word-1", day(2025, 3, 1))
	for _, g := range []Grade{GradeGood, GradeHard, GradeEasy, GradeAgain, GradeGood} {
		next, err := sched.Grade(card, g)
		if err != nil {
			t.Fatalf("%s: Grade: %v", g, err)
		}
		if want := clock.AddDays(today, next.IntervalDays); !next.NextReviewDate.Equal(want) {
			t.Errorf("%s: NextReviewDate = %v, want %v", g, next.NextReviewDate, want)
		}
		if next.NextReviewDate.Before(next.CreatedOn) {
			t.Errorf("%s: next review before creation", g)
		}
		card = next
	}
	if card.ReviewCount != 5 {
		t.Errorf("ReviewCount = %d, want 5", card.ReviewCount)
	}
}

func TestGrade_InvalidGrade(t *testing.T) {
	_, err := newTestScheduler().Grade(reviewing(6, 2.5, 3), Grade("perfect"))
	if !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	_, err = newTestScheduler().Grade(reviewing(6, 2.5, 3), GradeNone)
	if !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestGrade_CorruptCard(t *testing.T) {
	card := reviewing(6, 1.0, 3)
	_, err := newTestScheduler().Grade(card, GradeGood)
	if !errors.Is(err, fault.ErrInvariantViolation) {
		t.Errorf("err = %v, want ErrInvariantViolation", err)
	}
}

func TestNewScheduler_NilClock(t *testing.T) {
	sched := NewScheduler(nil)
	got, err := sched.Grade(NewCard("l", "i", time.Now()), GradeGood)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if got.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", got.ReviewCount)
	}
}
