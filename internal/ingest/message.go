package ingest

import "github.com/abhisek/lexis/internal/session"

// Routing keys the consumer binds.
const (
	KeyReviewGraded     = "review.graded"
	KeyQuestionAnswered = "question.answered"
	KeySessionCompleted = "session.completed"
)

// RoutingKeys lists every key bound to the queue.
var RoutingKeys = []string{KeyReviewGraded, KeyQuestionAnswered, KeySessionCompleted}

// ReviewGraded is the body of a review.graded message.
type ReviewGraded struct {
	LearnerID string `json:"learner_id"`
	ItemID    string `json:"item_id"`
	Grade     string `json:"grade"`
}

// QuestionAnswered is the body of a question.answered message.
type QuestionAnswered struct {
	LearnerID  string `json:"learner_id"`
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
}

// SessionCompleted is the body of a session.completed message.
type SessionCompleted struct {
	LearnerID string           `json:"learner_id"`
	Answers   []session.Answer `json:"answers"`
}
