package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/worker"
)

// SweepReport summarizes what is due across all learners.
type SweepReport struct {
	Day          time.Time    `json:"day"`
	Learners     int          `json:"learners"`
	DueCards     int          `json:"due_cards"`
	DueQuestions int          `json:"due_questions"`
	PerLearner   []LearnerDue `json:"per_learner"`
}

// LearnerDue is one learner's due counts.
type LearnerDue struct {
	LearnerID string `json:"learner_id"`
	Cards     int    `json:"cards"`
	Questions int    `json:"questions"`
}

type sweepResult struct {
	due LearnerDue
	err error
}

// Sweep computes due counts for every learner on the worker pool.
// Learners with nothing due are left out of PerLearner.
func (e *Engine) Sweep(ctx context.Context) (report SweepReport, err error) {
	start := time.Now()
	defer func() { e.finish(metrics.KindSweep, start, err, "learners", report.Learners) }()

	learners, err := e.store.Queries().ListLearners(ctx)
	if err != nil {
		return report, err
	}
	report.Day = e.today()
	report.Learners = len(learners)

	pool := worker.NewPool[sweepResult](e.workers, len(learners))
	for _, id := range learners {
		id := id
		pool.Submit(id, func() sweepResult {
			if err := ctx.Err(); err != nil {
				return sweepResult{err: err}
			}
			list, err := e.Due(ctx, id)
			if err != nil {
				return sweepResult{err: fmt.Errorf("sweep learner %s: %w", id, err)}
			}
			return sweepResult{due: LearnerDue{LearnerID: id, Cards: len(list.Cards), Questions: len(list.Questions)}}
		})
	}
	pool.Close()

	var firstErr error
	for r := range pool.Results() {
		if r.Output.err != nil {
			if firstErr == nil {
				firstErr = r.Output.err
			}
			continue
		}
		d := r.Output.due
		report.DueCards += d.Cards
		report.DueQuestions += d.Questions
		if d.Cards+d.Questions > 0 {
			report.PerLearner = append(report.PerLearner, d)
		}
	}
	if firstErr != nil {
		return report, firstErr
	}

	sort.Slice(report.PerLearner, func(i, j int) bool {
		return report.PerLearner[i].LearnerID < report.PerLearner[j].LearnerID
	})
	e.metrics.SetDue(report.DueCards, report.DueQuestions)
	e.logger.Info("sweep complete",
		"day", report.Day.Format("2006-01-02"),
		"learners", report.Learners,
		"due_cards", report.DueCards,
		"due_questions", report.DueQuestions,
	)
	return report, nil
}
