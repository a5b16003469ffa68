package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(20)

	Value = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Weak = lipgloss.NewStyle().
		Foreground(Error)

	Neutral = lipgloss.NewStyle().
		Foreground(Warning)

	Strong = lipgloss.NewStyle().
		Foreground(Success)

	Streak = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// ForStatus returns the style of a card status or mastery band name.
func ForStatus(name string) lipgloss.Style {
	switch name {
	case "learning", "new":
		return Weak
	case "reviewing", "familiar", "proficient":
		return Neutral
	case "mastered":
		return Strong
	}
	return Value
}

// Row renders a label/value line.
func Row(label string, value any) string {
	return Label.Render(label) + Value.Render(fmtValue(value))
}
