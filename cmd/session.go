package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/ui/theme"
)

var sessionCmd = &cobra.Command{
	Use:   "session LEARNER",
	Short: "Score a completed practice test",
	Long: "Reads a JSON array of answers, e.g.\n" +
		`  [{"section": 1, "correct": true}, {"section": 5, "correct": false, "question_id": "q-17"}]` + "\n" +
		"from --file, or from stdin when --file is \"-\".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		answers, err := readAnswers(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.engine.CompleteSession(cmd.Context(), args[0], answers)
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), res.Outcome)
		fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("session "+res.ID))
		return nil
	},
}

func init() {
	sessionCmd.Flags().StringP("file", "f", "-", "Answers file (JSON), or - for stdin")
}

func readAnswers(stdin io.Reader, path string) ([]session.Answer, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer f.Close()
		r = f
	}
	var answers []session.Answer
	if err := json.NewDecoder(r).Decode(&answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers, nil
}

func printOutcome(w io.Writer, out *session.Outcome) {
	fmt.Fprintln(w, theme.Title.Render("Session result"))
	for _, id := range out.Sections() {
		sc := out.PerSection[id]
		label := fmt.Sprintf("%d %s", id, id.Name())
		fmt.Fprintf(w, "%s %s  %d/%d\n", theme.Label.Width(28).Render(label), theme.Bar(sc.Accuracy(), 30), sc.Correct, sc.Attempted)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Row("Listening", fmtScore(out.Listening())))
	fmt.Fprintln(w, theme.Row("Reading", fmtScore(out.Reading())))
	fmt.Fprintln(w, theme.Row("Total", fmtScore(out.Total)))
	fmt.Fprintln(w, theme.Row("Weak", theme.Weak.Render(sectionList(out.Weak))))
	fmt.Fprintln(w, theme.Row("Strong", theme.Strong.Render(sectionList(out.Strong))))
}

func fmtScore(sc session.SectionScore) string {
	return fmt.Sprintf("%d/%d (%.0f%%)", sc.Correct, sc.Attempted, sc.Accuracy()*100)
}

func sectionList(ids []session.Section) string {
	if len(ids) == 0 {
		return "none"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fmt.Sprintf("%d (%s)", id, id.Name())
	}
	return strings.Join(names, ", ")
}
