package session

// SectionScore tracks correct and attempted counts for one section.
type SectionScore struct {
	Correct   int `json:"correct"`
	Attempted int `json:"attempted"`
}

// Record adds a new answer result to the score.
func (s *SectionScore) Record(correct bool) {
	s.Attempted++
	if correct {
		s.Correct++
	}
}

// Add merges another score into s.
func (s *SectionScore) Add(o SectionScore) {
	s.Correct += o.Correct
	s.Attempted += o.Attempted
}

// Accuracy returns Correct / Attempted, or 0 with nothing attempted.
func (s SectionScore) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// less reports whether a's accuracy is strictly below b's. Compared by
// cross-multiplication so equal ratios (3/5 and 6/10) tie exactly.
func less(a, b SectionScore) bool {
	return a.Correct*b.Attempted < b.Correct*a.Attempted
}
