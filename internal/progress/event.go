package progress

// Event is an activity that contributes to learner stats.
type Event interface {
	isEvent()
}

// AttemptEvent is a single graded answer or review.
type AttemptEvent struct {
	Correct bool
}

// SessionCompletedEvent is a finished practice test.
type SessionCompletedEvent struct {
	Attempted int
	Correct   int
}

func (AttemptEvent) isEvent()          {}
func (SessionCompletedEvent) isEvent() {}
