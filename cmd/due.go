package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/clock"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var dueCmd = &cobra.Command{
	Use:   "due LEARNER",
	Short: "List cards and questions due today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.engine.Due(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		today := clock.Today(clock.System{})
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Cards due (%d)", len(list.Cards))))
		for _, c := range list.Cards {
			overdue := ""
			if d := c.OverdueDays(today); d > 0 {
				overdue = theme.Hint.Render(fmt.Sprintf(" %dd overdue", d))
			}
			fmt.Fprintf(out, "  %-30s %s%s\n", c.ItemID, theme.ForStatus(string(c.Status)).Render(string(c.Status)), overdue)
		}
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Questions due (%d)", len(list.Questions))))
		for _, r := range list.Questions {
			band := string(mastery.BandOf(r.Level))
			fmt.Fprintf(out, "  %-30s level %d %s\n", r.QuestionID, r.Level, theme.ForStatus(band).Render(band))
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().Bool("json", false, "Print as JSON")
}
