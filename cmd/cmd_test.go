package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexis/internal/session"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"correct", true, false},
		{" Y ", true, false},
		{"wrong", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseVerdict(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVerdict(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVerdict(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReadAnswers(t *testing.T) {
	in := strings.NewReader(`[{"section": 2, "correct": true}, {"section": 6, "correct": false, "question_id": "q1"}]`)
	got, err := readAnswers(in, "-")
	require.NoError(t, err)
	assert.Equal(t, []session.Answer{
		{Section: 2, Correct: true},
		{Section: 6, Correct: false, QuestionID: "q1"},
	}, got)

	_, err = readAnswers(strings.NewReader(`{"section": 2}`), "")
	assert.Error(t, err)
}

func TestCommandsEndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lexis.db")
	t.Setenv("LEXIS_DB", "")
	t.Setenv("LEXIS_TUNABLES", "")

	run := func(stdin string, args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetArgs(append(args, "--db", db))
		require.NoError(t, rootCmd.Execute(), "lexis %v", args)
		return out.String()
	}

	assert.Contains(t, run("", "grade", "l1", "apple", "good"), "apple")
	assert.Contains(t, run("", "answer", "l1", "q1", "correct"), "q1")
	assert.Contains(t, run(`[{"section": 1, "correct": false}, {"section": 7, "correct": true}]`, "session", "l1"), "Photographs")
	assert.Contains(t, run("", "stats", "l1"), "Answered")
	assert.Contains(t, run("", "history", "l1"), "review")
	assert.Contains(t, run("", "sweep"), "Learners")
}
