package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Bar renders a horizontal progress bar with a trailing percentage.
// The whole bar, percentage included, is width cells wide.
func Bar(percent float64, width int) string {
	const percentWidth = 5 // " 100%"
	barWidth := max(4, width-percentWidth)

	filled := min(barWidth, max(0, int(float64(barWidth)*percent)))
	empty := barWidth - filled

	return ProgressFilled.Render(strings.Repeat(" ", filled)) +
		ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(TextDim).Render(fmt.Sprintf("%4.0f%%", percent*100))
}

func fmtValue(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.1f%%", x*100)
	default:
		return fmt.Sprint(x)
	}
}
