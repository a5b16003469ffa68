package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/abhisek/lexis/internal/fault"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/spacedrep"
	"github.com/abhisek/lexis/internal/store"
)

// Applier is the part of the engine the consumer drives.
type Applier interface {
	GradeCard(ctx context.Context, learnerID, itemID string, g spacedrep.Grade) (spacedrep.ReviewCard, error)
	RecordAnswer(ctx context.Context, learnerID, questionID string, correct bool) (mastery.Record, error)
	CompleteSession(ctx context.Context, learnerID string, answers []session.Answer) (store.SessionResult, error)
}

// Outcome is what to do with a delivery after handling it.
type Outcome string

const (
	Ack     Outcome = "ack"
	Reject  Outcome = "reject"  // nack without requeue
	Requeue Outcome = "requeue" // nack with requeue
)

// Handler decodes message bodies and applies them.
type Handler struct {
	applier Applier
	logger  *slog.Logger
}

func NewHandler(a Applier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{applier: a, logger: logger}
}

// Handle applies one message. Malformed bodies and rejected events are
// dropped; anything else that fails is retried.
func (h *Handler) Handle(ctx context.Context, routingKey string, body []byte) Outcome {
	err := h.apply(ctx, routingKey, body)
	if err == nil {
		return Ack
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		h.logger.Warn("dropping malformed message", "routing_key", routingKey, "error", err)
		return Reject
	case fault.ClassOf(err) == fault.ClassInternal:
		h.logger.Error("message failed, requeueing", "routing_key", routingKey, "error", err)
		return Requeue
	default:
		h.logger.Warn("dropping rejected message", "routing_key", routingKey,
			"class", string(fault.ClassOf(err)), "error", err)
		return Reject
	}
}

func (h *Handler) apply(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case KeyReviewGraded:
		var m ReviewGraded
		if err := json.Unmarshal(body, &m); err != nil {
			return err
		}
		g, err := spacedrep.ParseGrade(m.Grade)
		if err != nil {
			return err
		}
		_, err = h.applier.GradeCard(ctx, m.LearnerID, m.ItemID, g)
		return err

	case KeyQuestionAnswered:
		var m QuestionAnswered
		if err := json.Unmarshal(body, &m); err != nil {
			return err
		}
		_, err := h.applier.RecordAnswer(ctx, m.LearnerID, m.QuestionID, m.Correct)
		return err

	case KeySessionCompleted:
		var m SessionCompleted
		if err := json.Unmarshal(body, &m); err != nil {
			return err
		}
		_, err := h.applier.CompleteSession(ctx, m.LearnerID, m.Answers)
		return err

	default:
		// Not ours. Acked so it does not cycle through the queue.
		h.logger.Warn("unknown routing key", "routing_key", routingKey)
		return nil
	}
}
