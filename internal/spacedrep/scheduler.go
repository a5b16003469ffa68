package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

// Scheduler applies SM-2 style grading to review cards. It holds no state
// besides its clock, so one Scheduler may be shared across goroutines.
type Scheduler struct {
	clock clock.Clock
}

// NewScheduler creates a scheduler. A nil clock uses the system clock.
func NewScheduler(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.System{}
	}
	return &Scheduler{clock: c}
}

// Grade returns the card that results from grading card with g today.
// The input card is not modified.
func (s *Scheduler) Grade(card ReviewCard, g Grade) (ReviewCard, error) {
	return GradeOn(card, g, clock.Today(s.clock))
}

// GradeOn is Grade with an explicit review date.
func GradeOn(card ReviewCard, g Grade, today time.Time) (ReviewCard, error) {
	if !g.Valid() {
		return card, fault.InvalidArgument("unknown grade %q", g)
	}
	if err := card.Validate(); err != nil {
		return card, err
	}

	next := card
	prev := card.IntervalDays
	if !card.Reviewed() {
		prev = 1
	}
	reviews := card.ReviewCount + 1

	switch g {
	case GradeAgain:
		next.IntervalDays = 1
		next.EaseFactor = math.Max(MinEaseFactor, card.EaseFactor-AgainEasePenalty)
		next.Status = StatusLearning

	case GradeHard:
		next.IntervalDays = max(1, roundDays(float64(prev)*HardIntervalMultiplier))
		next.EaseFactor = math.Max(MinEaseFactor, card.EaseFactor-HardEasePenalty)
		if card.Status == StatusLearning {
			next.Status = StatusReviewing
		}

	case GradeGood:
		next.IntervalDays = grow(prev, float64(prev)*card.EaseFactor)
		next.Status = promote(card.Status, next.IntervalDays, reviews)

	case GradeEasy:
		next.IntervalDays = grow(prev, float64(prev)*card.EaseFactor*EasyIntervalBonus)
		next.EaseFactor = card.EaseFactor + EasyEaseBonus
		next.Status = promote(card.Status, next.IntervalDays, reviews)
	}

	day := clock.Day(today)
	next.ReviewCount = reviews
	next.NextReviewDate = clock.AddDays(day, next.IntervalDays)
	next.LastResult = g
	if next.CreatedOn.IsZero() {
		next.CreatedOn = day
	}
	return next, nil
}

// grow rounds the scaled interval and guarantees it is strictly longer than
// prev, so repeated successful grades always space the card further out.
func grow(prev int, scaled float64) int {
	return max(prev+1, roundDays(scaled))
}

// promote returns the status after a successful (Good or Easy) grade.
// Mastered cards stay mastered; only Again demotes them.
func promote(current Status, intervalDays, reviews int) Status {
	if current == StatusMastered {
		return StatusMastered
	}
	if intervalDays >= MasteredIntervalDays && reviews >= MasteredReviewCount {
		return StatusMastered
	}
	return StatusReviewing
}

func roundDays(v float64) int {
	return int(math.Round(v))
}
