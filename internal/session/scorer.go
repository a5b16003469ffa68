package session

import (
	"sort"

	"github.com/abhisek/lexis/internal/fault"
)

// Answer is one graded question from a completed practice test.
type Answer struct {
	Section Section `json:"section"`
	Correct bool    `json:"correct"`
	// QuestionID is optional. When set, the caller may also update the
	// question's mastery record.
	QuestionID string `json:"question_id,omitempty"`
}

// Thresholds classify a section by accuracy: below Weak is weak, at or
// above Strong is strong, anything between is neutral.
type Thresholds struct {
	Weak   float64 `json:"weakThreshold"`
	Strong float64 `json:"strongThreshold"`
}

// DefaultThresholds returns the standard 0.6 / 0.85 split.
func DefaultThresholds() Thresholds {
	return Thresholds{Weak: 0.6, Strong: 0.85}
}

// Validate requires both thresholds in (0,1) and Weak <= Strong.
func (t Thresholds) Validate() error {
	if !(t.Weak > 0 && t.Weak < 1) {
		return fault.InvalidArgument("weak threshold %v outside (0,1)", t.Weak)
	}
	if !(t.Strong > 0 && t.Strong < 1) {
		return fault.InvalidArgument("strong threshold %v outside (0,1)", t.Strong)
	}
	if t.Weak > t.Strong {
		return fault.InvalidArgument("weak threshold %v above strong threshold %v", t.Weak, t.Strong)
	}
	return nil
}

// Scorer aggregates practice-test answers into section scores.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with the given thresholds.
func NewScorer(t Thresholds) (*Scorer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{thresholds: t}, nil
}

// Thresholds returns the thresholds in use.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Score groups answers by section and ranks weak and strong sections.
// An empty session yields an empty outcome, not an error.
func (s *Scorer) Score(answers []Answer) (*Outcome, error) {
	out := &Outcome{
		PerSection: make(map[Section]SectionScore),
		Weak:       []Section{},
		Strong:     []Section{},
		Neutral:    []Section{},
	}

	for i, a := range answers {
		if !a.Section.Valid() {
			return nil, fault.InvalidArgument("answer %d: section %d outside %d..%d", i, a.Section, MinSection, MaxSection)
		}
		sc := out.PerSection[a.Section]
		sc.Record(a.Correct)
		out.PerSection[a.Section] = sc
		out.Total.Record(a.Correct)
	}

	for _, id := range out.Sections() {
		sc := out.PerSection[id]
		if sc.Attempted == 0 {
			continue
		}
		switch acc := sc.Accuracy(); {
		case acc < s.thresholds.Weak:
			out.Weak = append(out.Weak, id)
		case acc >= s.thresholds.Strong:
			out.Strong = append(out.Strong, id)
		default:
			out.Neutral = append(out.Neutral, id)
		}
	}

	// Sections() is ascending, so a stable sort keeps ties by section id.
	sort.SliceStable(out.Weak, func(i, j int) bool {
		return less(out.PerSection[out.Weak[i]], out.PerSection[out.Weak[j]])
	})
	sort.SliceStable(out.Strong, func(i, j int) bool {
		return less(out.PerSection[out.Strong[j]], out.PerSection[out.Strong[i]])
	})
	return out, nil
}
