// Package progress folds attempt and session events into learner-level
// rollups.
package progress

import (
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

// LearnerStats is the aggregate activity record of one learner.
type LearnerStats struct {
	LearnerID         string     `json:"learner_id"`
	TotalAnswered     int        `json:"total_answered"`
	TotalCorrect      int        `json:"total_correct"`
	StreakDays        int        `json:"streak_days"`
	LongestStreak     int        `json:"longest_streak"`
	SessionsCompleted int        `json:"sessions_completed"`
	LastActivityDate  *time.Time `json:"last_activity_date,omitempty"`
}

// Accuracy returns TotalCorrect / TotalAnswered, or 0 before any answer.
func (s LearnerStats) Accuracy() float64 {
	if s.TotalAnswered == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAnswered)
}

// Validate checks the stats as of today.
func (s LearnerStats) Validate(today time.Time) error {
	switch {
	case s.TotalAnswered < 0, s.TotalCorrect < 0, s.StreakDays < 0,
		s.LongestStreak < 0, s.SessionsCompleted < 0:
		return fault.InvalidArgument("stats %s: negative counter", s.LearnerID)
	case s.TotalCorrect > s.TotalAnswered:
		return fault.InvariantViolation("stats %s: total correct %d exceeds total answered %d",
			s.LearnerID, s.TotalCorrect, s.TotalAnswered)
	case s.LastActivityDate != nil && clock.Day(*s.LastActivityDate).After(clock.Day(today)):
		return fault.InvariantViolation("stats %s: last activity %s is after today %s",
			s.LearnerID, clock.FormatDate(*s.LastActivityDate), clock.FormatDate(today))
	}
	return nil
}

// StreakMilestones are the streak lengths worth celebrating.
var StreakMilestones = []int{3, 7, 14, 30}

// NextStreakMilestone returns the next milestone above the current streak.
func NextStreakMilestone(current int) int {
	for _, m := range StreakMilestones {
		if m > current {
			return m
		}
	}
	// Beyond 30, every 30 days.
	return ((current / 30) + 1) * 30
}
