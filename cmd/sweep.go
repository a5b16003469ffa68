package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/scheduler"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Count what is due across all learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if daily, _ := cmd.Flags().GetBool("daily"); daily {
			at, _ := cmd.Flags().GetString("at")
			if at == "" {
				at = a.cfg.SweepAt
			}
			s, err := scheduler.New(a.engine, at, a.cfg.NewLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s.Start()
			defer s.Stop()
			fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("next sweep at "+s.NextRun().Format("2006-01-02 15:04 MST")))
			<-ctx.Done()
			return nil
		}

		report, err := a.engine.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Due on "+report.Day.Format("2006-01-02")))
		fmt.Fprintln(out, theme.Row("Learners", report.Learners))
		fmt.Fprintln(out, theme.Row("Cards due", report.DueCards))
		fmt.Fprintln(out, theme.Row("Questions due", report.DueQuestions))
		for _, d := range report.PerLearner {
			fmt.Fprintf(out, "  %-24s %4d cards %4d questions\n", d.LearnerID, d.Cards, d.Questions)
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().Bool("daily", false, "Keep running and sweep once a day")
	sweepCmd.Flags().String("at", "", "Daily sweep time, HH:MM UTC (overrides LEXIS_SWEEP_AT)")
}
