package session

import "sort"

// Outcome is the scored result of one completed practice test.
type Outcome struct {
	PerSection map[Section]SectionScore `json:"per_section"`
	// Weak is ordered by accuracy ascending, Strong by accuracy descending,
	// Neutral by section. Ties are broken by section ascending.
	Weak    []Section    `json:"weak_sections"`
	Strong  []Section    `json:"strong_sections"`
	Neutral []Section    `json:"neutral_sections"`
	Total   SectionScore `json:"total"`
}

// Sections returns the scored sections in ascending order.
func (o *Outcome) Sections() []Section {
	ids := make([]Section, 0, len(o.PerSection))
	for id := range o.PerSection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Accuracy returns the overall accuracy of the session.
func (o *Outcome) Accuracy() float64 {
	return o.Total.Accuracy()
}

// Listening sums the listening parts (1-4).
func (o *Outcome) Listening() SectionScore {
	var sc SectionScore
	for id, s := range o.PerSection {
		if id.IsListening() {
			sc.Add(s)
		}
	}
	return sc
}

// Reading sums the reading parts (5-7).
func (o *Outcome) Reading() SectionScore {
	var sc SectionScore
	for id, s := range o.PerSection {
		if !id.IsListening() {
			sc.Add(s)
		}
	}
	return sc
}
