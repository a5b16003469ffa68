package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history LEARNER",
	Short: "Show a learner's recent events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		after, _ := cmd.Flags().GetInt64("after")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.engine.History(cmd.Context(), args[0], store.QueryOpts{Limit: limit, After: after})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No events"))
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%6d  %s  %-8s %-24s %s\n",
				e.Sequence, e.RecordedAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Subject, e.Detail)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of events (0 = all)")
	historyCmd.Flags().Int64("after", 0, "Only events with a sequence above this")
}
