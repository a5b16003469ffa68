package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var answerCmd = &cobra.Command{
	Use:   "answer LEARNER QUESTION correct|incorrect",
	Short: "Record an answered question",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, err := parseVerdict(args[2])
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.engine.RecordAnswer(cmd.Context(), args[0], args[1], correct)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		verdict := theme.Incorrect.Render("incorrect")
		if correct {
			verdict = theme.Correct.Render("correct")
		}
		band := string(mastery.BandOf(rec.Level))
		fmt.Fprintln(out, theme.Title.Render(rec.QuestionID), verdict)
		fmt.Fprintln(out, theme.Row("Level", fmt.Sprintf("%d (%s)", rec.Level, theme.ForStatus(band).Render(band))))
		fmt.Fprintln(out, theme.Row("Reviews", rec.ReviewCount))
		fmt.Fprintln(out, theme.Row("Next review", clock.FormatDate(*rec.NextReviewDate)))
		return nil
	},
}

func parseVerdict(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "right", "yes", "y", "true", "1":
		return true, nil
	case "incorrect", "wrong", "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("unknown verdict %q: want correct or incorrect", s)
}
