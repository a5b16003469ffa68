package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/lexis/internal/fault"
)

func answers(section Section, correct, wrong int) []Answer {
	var out []Answer
	for i := 0; i < correct; i++ {
		out = append(out, Answer{Section: section, Correct: true})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, Answer{Section: section, Correct: false})
	}
	return out
}

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(DefaultThresholds())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return s
}

func TestScore_Empty(t *testing.T) {
	out, err := newTestScorer(t).Score(nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(out.Weak) != 0 || len(out.Strong) != 0 || len(out.Neutral) != 0 {
		t.Errorf("expected empty classification, got %+v", out)
	}
	if out.Weak == nil || out.Strong == nil {
		t.Error("expected non-nil empty slices")
	}
	if out.Total.Attempted != 0 {
		t.Errorf("Total.Attempted = %d, want 0", out.Total.Attempted)
	}
}

func TestScore_SingleWeakSection(t *testing.T) {
	out, err := newTestScorer(t).Score(answers(1, 3, 7))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	sc := out.PerSection[1]
	if sc.Correct != 3 || sc.Attempted != 10 {
		t.Errorf("section 1 = %+v, want 3/10", sc)
	}
	if !reflect.DeepEqual(out.Weak, []Section{1}) {
		t.Errorf("Weak = %v, want [1]", out.Weak)
	}
	if len(out.Strong) != 0 || len(out.Neutral) != 0 {
		t.Errorf("Strong = %v, Neutral = %v, want empty", out.Strong, out.Neutral)
	}
}

func TestScore_ClassificationAndOrdering(t *testing.T) {
	var in []Answer
	in = append(in, answers(7, 1, 4)...) // 0.20 weak
	in = append(in, answers(2, 2, 3)...) // 0.40 weak
	in = append(in, answers(5, 2, 3)...) // 0.40 weak, ties with 2
	in = append(in, answers(3, 3, 2)...) // 0.60 neutral (boundary)
	in = append(in, answers(6, 9, 1)...) // 0.90 strong
	in = append(in, answers(4, 5, 0)...) // 1.00 strong
	in = append(in, answers(1, 17, 3)...) // 0.85 strong (boundary)

	out, err := newTestScorer(t).Score(in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if want := []Section{7, 2, 5}; !reflect.DeepEqual(out.Weak, want) {
		t.Errorf("Weak = %v, want %v", out.Weak, want)
	}
	if want := []Section{4, 6, 1}; !reflect.DeepEqual(out.Strong, want) {
		t.Errorf("Strong = %v, want %v", out.Strong, want)
	}
	if want := []Section{3}; !reflect.DeepEqual(out.Neutral, want) {
		t.Errorf("Neutral = %v, want %v", out.Neutral, want)
	}
	if out.Total.Attempted != 55 || out.Total.Correct != 39 {
		t.Errorf("Total = %+v, want 39/55", out.Total)
	}
}

func TestScore_StrongTiesBySectionAscending(t *testing.T) {
	var in []Answer
	in = append(in, answers(6, 9, 1)...)
	in = append(in, answers(3, 18, 2)...)
	out, err := newTestScorer(t).Score(in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if want := []Section{3, 6}; !reflect.DeepEqual(out.Strong, want) {
		t.Errorf("Strong = %v, want %v", out.Strong, want)
	}
}

func TestScore_EverySectionClassifiedOnce(t *testing.T) {
	var in []Answer
	for s := MinSection; s <= MaxSection; s++ {
		in = append(in, answers(s, int(s), 8-int(s))...)
	}
	out, err := newTestScorer(t).Score(in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	seen := map[Section]int{}
	for _, list := range [][]Section{out.Weak, out.Strong, out.Neutral} {
		for _, s := range list {
			seen[s]++
		}
	}
	for s := MinSection; s <= MaxSection; s++ {
		if seen[s] != 1 {
			t.Errorf("section %d classified %d times", s, seen[s])
		}
	}
}

func TestScore_CustomThresholds(t *testing.T) {
	s, err := NewScorer(Thresholds{Weak: 0.5, Strong: 0.7})
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	out, err := s.Score(append(answers(1, 3, 2), answers(2, 7, 3)...))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(out.Neutral, []Section{1}) || !reflect.DeepEqual(out.Strong, []Section{2}) {
		t.Errorf("Neutral = %v, Strong = %v", out.Neutral, out.Strong)
	}
}

func TestScore_InvalidSection(t *testing.T) {
	_, err := newTestScorer(t).Score([]Answer{{Section: 1, Correct: true}, {Section: 9}})
	if !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		th   Thresholds
		ok   bool
		name string
	}{
		{DefaultThresholds(), true, "default"},
		{Thresholds{Weak: 0.7, Strong: 0.7}, true, "equal"},
		{Thresholds{Weak: 0, Strong: 0.8}, false, "zero weak"},
		{Thresholds{Weak: 0.5, Strong: 1}, false, "strong at 1"},
		{Thresholds{Weak: 0.9, Strong: 0.8}, false, "inverted"},
	}
	for _, tt := range tests {
		err := tt.th.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, fault.ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", tt.name, err)
		}
	}
}

func TestOutcome_ListeningReading(t *testing.T) {
	var in []Answer
	in = append(in, answers(1, 4, 1)...)
	in = append(in, answers(4, 2, 3)...)
	in = append(in, answers(7, 6, 4)...)
	out, err := newTestScorer(t).Score(in)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if l := out.Listening(); l.Correct != 6 || l.Attempted != 10 {
		t.Errorf("Listening = %+v, want 6/10", l)
	}
	if r := out.Reading(); r.Correct != 6 || r.Attempted != 10 {
		t.Errorf("Reading = %+v, want 6/10", r)
	}
	if out.Accuracy() != 0.6 {
		t.Errorf("Accuracy() = %v, want 0.6", out.Accuracy())
	}
}
