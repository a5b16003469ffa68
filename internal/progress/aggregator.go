package progress

import (
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

// Aggregator applies events to learner stats.
type Aggregator struct {
	clock clock.Clock
}

// NewAggregator creates an aggregator. A nil clock uses the system clock.
func NewAggregator(c clock.Clock) *Aggregator {
	if c == nil {
		c = clock.System{}
	}
	return &Aggregator{clock: c}
}

// Apply returns the stats that result from ev happening today.
// Counters are additive on every call; the streak moves at most once per
// calendar day.
func (a *Aggregator) Apply(stats LearnerStats, ev Event) (LearnerStats, error) {
	return ApplyOn(stats, ev, clock.Today(a.clock))
}

// ApplyOn is Apply with an explicit date.
func ApplyOn(stats LearnerStats, ev Event, today time.Time) (LearnerStats, error) {
	if err := stats.Validate(today); err != nil {
		return stats, err
	}

	next := stats
	switch e := ev.(type) {
	case AttemptEvent:
		next.TotalAnswered++
		if e.Correct {
			next.TotalCorrect++
		}
	case SessionCompletedEvent:
		if e.Attempted < 0 || e.Correct < 0 || e.Correct > e.Attempted {
			return stats, fault.InvalidArgument("session event: %d correct of %d attempted", e.Correct, e.Attempted)
		}
		next.TotalAnswered += e.Attempted
		next.TotalCorrect += e.Correct
		next.SessionsCompleted++
	case nil:
		return stats, fault.InvalidArgument("nil event")
	default:
		return stats, fault.InvalidArgument("unknown event %T", ev)
	}

	day := clock.Day(today)
	next.StreakDays = nextStreak(stats, day)
	next.LongestStreak = max(stats.LongestStreak, next.StreakDays)
	next.LastActivityDate = &day
	return next, nil
}

func nextStreak(stats LearnerStats, today time.Time) int {
	if stats.LastActivityDate == nil {
		return 1
	}
	switch clock.DaysBetween(*stats.LastActivityDate, today) {
	case 0:
		return stats.StreakDays
	case 1:
		return stats.StreakDays + 1
	default:
		return 1
	}
}
