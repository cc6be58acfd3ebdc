package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with a left help hint and a
// right-aligned info string.
func RenderStatusBar(width int, left, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	if left == "" {
		left = " [?]help  [q]uit"
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
