package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
)

// ProgressBar renders a horizontal bar at the given width for a
// fraction in [0, 1]. Values outside the range are clamped.
func ProgressBar(fraction float64, width int) string {
	if width < 4 {
		width = 4
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	t := theme.Active

	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}

	fillStyle := lipgloss.NewStyle().Foreground(t.Accent)
	emptyStyle := lipgloss.NewStyle().Foreground(t.Border)

	return fillStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}
