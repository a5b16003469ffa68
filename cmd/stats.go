package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/progress"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats LEARNER",
	Short: "Show learning statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		s, err := a.engine.Stats(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(out, theme.Hint.Render("No activity recorded for "+args[0]))
			return nil
		}
		if err != nil {
			return err
		}

		last := "never"
		if s.LastActivityDate != nil {
			last = clock.FormatDate(*s.LastActivityDate)
		}
		fmt.Fprintln(out, theme.Title.Render(s.LearnerID))
		fmt.Fprintln(out, theme.Row("Answered", s.TotalAnswered))
		fmt.Fprintln(out, theme.Row("Correct", s.TotalCorrect))
		fmt.Fprintln(out, theme.Label.Render("Accuracy")+theme.Bar(s.Accuracy(), 30))
		fmt.Fprintln(out, theme.Row("Streak", theme.Streak.Render(fmt.Sprintf("%d days", s.StreakDays))))
		fmt.Fprintln(out, theme.Row("Longest streak", fmt.Sprintf("%d days", s.LongestStreak)))
		fmt.Fprintln(out, theme.Row("Next milestone", fmt.Sprintf("%d days", progress.NextStreakMilestone(s.StreakDays))))
		fmt.Fprintln(out, theme.Row("Sessions", s.SessionsCompleted))
		fmt.Fprintln(out, theme.Row("Last activity", last))
		return nil
	},
}
