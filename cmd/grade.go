package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/spacedrep"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var gradeCmd = &cobra.Command{
	Use:   "grade LEARNER ITEM again|hard|good|easy",
	Short: "Grade a vocabulary review",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := spacedrep.ParseGrade(args[2])
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		card, err := a.engine.GradeCard(cmd.Context(), args[0], args[1], g)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(card.ItemID))
		fmt.Fprintln(out, theme.Row("Status", theme.ForStatus(string(card.Status)).Render(string(card.Status))))
		fmt.Fprintln(out, theme.Row("Interval", fmt.Sprintf("%d days", card.IntervalDays)))
		fmt.Fprintln(out, theme.Row("Ease", fmt.Sprintf("%.2f", card.EaseFactor)))
		fmt.Fprintln(out, theme.Row("Reviews", card.ReviewCount))
		fmt.Fprintln(out, theme.Row("Next review", clock.FormatDate(card.NextReviewDate)))
		return nil
	},
}
