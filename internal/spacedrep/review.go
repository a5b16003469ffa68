package spacedrep

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

// Status is a card's position in the review lifecycle.
type Status string

const (
	StatusLearning  Status = "learning"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusLearning, StatusReviewing, StatusMastered:
		return true
	}
	return false
}

// Grade is the learner's self-assessment after a review.
type Grade string

const (
	GradeNone  Grade = ""
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// Valid reports whether g is one of the four gradable outcomes.
func (g Grade) Valid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	}
	return false
}

// ParseGrade parses a grade name, case-insensitively.
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return GradeNone, fault.InvalidArgument("unknown grade %q", s)
	}
	return g, nil
}

// ReviewCard holds the spaced repetition state of one learner × item pair.
// Dates are calendar days (see clock.Day).
type ReviewCard struct {
	LearnerID      string    `json:"learner_id"`
	ItemID         string    `json:"item_id"`
	Status         Status    `json:"status"`
	IntervalDays   int       `json:"interval_days"`
	EaseFactor     float64   `json:"ease_factor"`
	ReviewCount    int       `json:"review_count"`
	NextReviewDate time.Time `json:"next_review_date"`
	LastResult     Grade     `json:"last_result,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}

// NewCard returns a never-reviewed card, due on the day it is created.
func NewCard(learnerID, itemID string, today time.Time) ReviewCard {
	day := clock.Day(today)
	return ReviewCard{
		LearnerID:      learnerID,
		ItemID:         itemID,
		Status:         StatusLearning,
		IntervalDays:   1,
		EaseFactor:     DefaultEaseFactor,
		NextReviewDate: day,
		CreatedOn:      day,
	}
}

// Reviewed reports whether the card has been graded at least once.
func (c ReviewCard) Reviewed() bool {
	return c.ReviewCount > 0
}

// IsDue returns true if the card is due on or before today.
func (c ReviewCard) IsDue(today time.Time) bool {
	return !clock.Day(today).Before(clock.Day(c.NextReviewDate))
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (c ReviewCard) OverdueDays(today time.Time) int {
	d := clock.DaysBetween(c.NextReviewDate, today)
	if d < 0 {
		return 0
	}
	return d
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (c ReviewCard) DaysUntilReview(today time.Time) int {
	d := clock.DaysBetween(today, c.NextReviewDate)
	if d < 0 {
		return 0
	}
	return d
}

// Validate checks the card against the invariants Grade relies on.
func (c ReviewCard) Validate() error {
	if !c.Status.Valid() {
		return fault.InvalidArgument("card %s/%s: unknown status %q", c.LearnerID, c.ItemID, c.Status)
	}
	if c.ReviewCount < 0 {
		return fault.InvalidArgument("card %s/%s: negative review count %d", c.LearnerID, c.ItemID, c.ReviewCount)
	}
	if c.IntervalDays < 0 {
		return fault.InvalidArgument("card %s/%s: negative interval %d", c.LearnerID, c.ItemID, c.IntervalDays)
	}
	if math.IsNaN(c.EaseFactor) || math.IsInf(c.EaseFactor, 0) {
		return fault.InvalidArgument("card %s/%s: ease factor is not a number", c.LearnerID, c.ItemID)
	}
	if c.EaseFactor < MinEaseFactor {
		return fault.InvariantViolation("card %s/%s: ease factor %.2f below floor %.2f",
			c.LearnerID, c.ItemID, c.EaseFactor, MinEaseFactor)
	}
	if c.Reviewed() && c.IntervalDays < 1 {
		return fault.InvariantViolation("card %s/%s: reviewed card has interval %d",
			c.LearnerID, c.ItemID, c.IntervalDays)
	}
	if c.Reviewed() && c.LastResult != GradeNone && !c.LastResult.Valid() {
		return fault.InvalidArgument("card %s/%s: unknown last result %q", c.LearnerID, c.ItemID, c.LastResult)
	}
	if !c.CreatedOn.IsZero() && !c.NextReviewDate.IsZero() &&
		clock.Day(c.NextReviewDate).Before(clock.Day(c.CreatedOn)) {
		return fault.InvariantViolation("card %s/%s: next review %s before creation %s",
			c.LearnerID, c.ItemID, clock.FormatDate(c.NextReviewDate), clock.FormatDate(c.CreatedOn))
	}
	return nil
}

// SortDue orders cards most overdue first, then by learner and item ID.
// The slice is sorted in place.
func SortDue(cards []ReviewCard, today time.Time) {
	sort.SliceStable(cards, func(i, j int) bool {
		oi, oj := cards[i].OverdueDays(today), cards[j].OverdueDays(today)
		if oi != oj {
			return oi > oj
		}
		if cards[i].LearnerID != cards[j].LearnerID {
			return cards[i].LearnerID < cards[j].LearnerID
		}
		return cards[i].ItemID < cards[j].ItemID
	})
}
