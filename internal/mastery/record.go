package mastery

import (
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

const (
	MinLevel = 0
	MaxLevel = 5
)

// Record holds the coarse competency band of one learner × question pair.
type Record struct {
	LearnerID   string `json:"learner_id"`
	QuestionID  string `json:"question_id"`
	Level       int    `json:"mastery_level"`
	ReviewCount int    `json:"review_count"`
	// NextReviewDate is nil until the question has been answered once.
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
}

// NewRecord returns an unanswered record at level 0.
func NewRecord(learnerID, questionID string) Record {
	return Record{LearnerID: learnerID, QuestionID: questionID}
}

// IsDue returns true if the question should be practiced today.
// A record that was never answered is always due.
func (r Record) IsDue(today time.Time) bool {
	if r.NextReviewDate == nil {
		return true
	}
	return !clock.Day(today).Before(clock.Day(*r.NextReviewDate))
}

// OverdueDays returns how many days past due the record is.
func (r Record) OverdueDays(today time.Time) int {
	if r.NextReviewDate == nil {
		return 0
	}
	return max(0, clock.DaysBetween(*r.NextReviewDate, today))
}

// Validate checks the record against the invariants Record relies on.
func (r Record) Validate() error {
	if r.ReviewCount < 0 {
		return fault.InvalidArgument("mastery %s/%s: negative review count %d", r.LearnerID, r.QuestionID, r.ReviewCount)
	}
	if r.Level < MinLevel || r.Level > MaxLevel {
		return fault.InvariantViolation("mastery %s/%s: level %d outside [%d,%d]",
			r.LearnerID, r.QuestionID, r.Level, MinLevel, MaxLevel)
	}
	return nil
}
