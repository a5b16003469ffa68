// Package report writes a learner's records to an xlsx workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/engine"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/store"
)

// Sheet names, in workbook order.
const (
	SheetSummary  = "Summary"
	SheetCards    = "Cards"
	SheetMastery  = "Mastery"
	SheetSessions = "Sessions"
)

var (
	cardHeader    = []any{"Item", "Status", "Interval (days)", "Ease", "Reviews", "Next review", "Last result", "Created"}
	masteryHeader = []any{"Question", "Level", "Band", "Reviews", "Next review"}
	sessionHeader = []any{"Session", "Recorded", "Section", "Part", "Correct", "Attempted", "Accuracy", "Band"}
)

// Workbook builds the export for one learner.
func Workbook(snap engine.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetCards, SheetMastery, SheetSessions} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, snap.LearnerID, snap.Stats); err != nil {
		f.Close()
		return nil, err
	}

	rows := make([][]any, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		rows = append(rows, []any{
			c.ItemID, string(c.Status), c.IntervalDays, c.EaseFactor, c.ReviewCount,
			clock.FormatDate(c.NextReviewDate), string(c.LastResult), clock.FormatDate(c.CreatedOn),
		})
	}
	if err := writeTable(f, SheetCards, cardHeader, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = rows[:0]
	for _, r := range snap.Mastery {
		next := ""
		if r.NextReviewDate != nil {
			next = clock.FormatDate(*r.NextReviewDate)
		}
		rows = append(rows, []any{r.QuestionID, r.Level, string(mastery.BandOf(r.Level)), r.ReviewCount, next})
	}
	if err := writeTable(f, SheetMastery, masteryHeader, rows); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeTable(f, SheetSessions, sessionHeader, sessionRows(snap.Sessions)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Export writes the learner's workbook to path.
func Export(snap engine.Snapshot, path string) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, learnerID string, stats *progress.LearnerStats) error {
	s := progress.LearnerStats{LearnerID: learnerID}
	if stats != nil {
		s = *stats
	}
	last := ""
	if s.LastActivityDate != nil {
		last = clock.FormatDate(*s.LastActivityDate)
	}
	rows := [][]any{
		{"Learner", s.LearnerID},
		{"Total answered", s.TotalAnswered},
		{"Total correct", s.TotalCorrect},
		{"Accuracy", s.Accuracy()},
		{"Streak (days)", s.StreakDays},
		{"Longest streak", s.LongestStreak},
		{"Next milestone", progress.NextStreakMilestone(s.StreakDays)},
		{"Sessions completed", s.SessionsCompleted},
		{"Last activity", last},
	}
	return writeRows(f, SheetSummary, 1, rows)
}

func sessionRows(sessions []store.SessionResult) [][]any {
	var rows [][]any
	for _, s := range sessions {
		bands := make(map[int]string)
		for _, id := range s.Outcome.Weak {
			bands[int(id)] = store.BandWeak
		}
		for _, id := range s.Outcome.Strong {
			bands[int(id)] = store.BandStrong
		}
		for _, id := range s.Outcome.Sections() {
			sc := s.Outcome.PerSection[id]
			band, ok := bands[int(id)]
			if !ok {
				band = store.BandNeutral
			}
			rows = append(rows, []any{
				s.ID, s.RecordedAt.Format("2006-01-02 15:04"), int(id), id.Name(),
				sc.Correct, sc.Attempted, sc.Accuracy(), band,
			})
		}
	}
	return rows
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := writeRows(f, sheet, 1, [][]any{header}); err != nil {
		return err
	}
	return writeRows(f, sheet, 2, rows)
}

func writeRows(f *excelize.File, sheet string, firstRow int, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, firstRow+i)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
