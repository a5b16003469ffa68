package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export LEARNER",
	Short: "Export a learner's records to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = args[0] + ".xlsx"
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.engine.Snapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := report.Export(snap, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d cards, %d questions, %d sessions)\n",
			path, len(snap.Cards), len(snap.Mastery), len(snap.Sessions))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output file (default LEARNER.xlsx)")
}
