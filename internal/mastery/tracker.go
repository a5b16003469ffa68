package mastery

import (
	"time"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/fault"
)

const (
	// CorrectStep is how far a correct answer raises the level.
	CorrectStep = 1
	// MissPenalty is how far a miss lowers the level. Misses cost more than
	// correct answers gain.
	MissPenalty = 2
)

// DueTable maps a mastery level to the days until the question is due again.
type DueTable [MaxLevel + 1]int

// DefaultDueTable is {0:1, 1:2, 2:4, 3:7, 4:14, 5:30}.
var DefaultDueTable = DueTable{1, 2, 4, 7, 14, 30}

// Validate requires positive, non-decreasing days.
func (t DueTable) Validate() error {
	for level, days := range t {
		if days < 1 {
			return fault.InvalidArgument("due table: level %d has %d days, want >= 1", level, days)
		}
		if level > 0 && days < t[level-1] {
			return fault.InvalidArgument("due table: level %d (%d days) shorter than level %d (%d days)",
				level, days, level-1, t[level-1])
		}
	}
	return nil
}

// DueTableFromMap builds a table from a level → days mapping. Every level
// from MinLevel to MaxLevel must be present.
func DueTableFromMap(m map[int]int) (DueTable, error) {
	var t DueTable
	if len(m) != len(t) {
		return t, fault.InvalidArgument("due table: got %d levels, want %d", len(m), len(t))
	}
	for level := MinLevel; level <= MaxLevel; level++ {
		days, ok := m[level]
		if !ok {
			return t, fault.InvalidArgument("due table: missing level %d", level)
		}
		t[level] = days
	}
	return t, t.Validate()
}

// Tracker updates mastery records from binary answer outcomes.
type Tracker struct {
	clock clock.Clock
	table DueTable
}

// NewTracker creates a tracker. A nil clock uses the system clock.
func NewTracker(c clock.Clock, table DueTable) (*Tracker, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = clock.System{}
	}
	return &Tracker{clock: c, table: table}, nil
}

// Table returns the due table in use.
func (t *Tracker) Table() DueTable {
	return t.table
}

// Record returns the record that results from answering today.
func (t *Tracker) Record(rec Record, correct bool) (Record, error) {
	return RecordOn(rec, correct, clock.Today(t.clock), t.table)
}

// RecordOn is Record with an explicit date and due table.
func RecordOn(rec Record, correct bool, today time.Time, table DueTable) (Record, error) {
	if err := rec.Validate(); err != nil {
		return rec, err
	}

	next := rec
	if correct {
		next.Level = min(MaxLevel, rec.Level+CorrectStep)
	} else {
		next.Level = max(MinLevel, rec.Level-MissPenalty)
	}
	next.ReviewCount = rec.ReviewCount + 1

	due := clock.AddDays(today, table[next.Level])
	next.NextReviewDate = &due
	return next, nil
}
