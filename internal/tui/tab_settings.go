package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/components"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	rows := []struct{ label, value string }{
		{"Config file", config.ConfigPath()},
		{"Backend", cfg.Storage.Backend},
		{"Store path", cfg.StorePath()},
		{"Default filter", cfg.General.DefaultFilter},
		{"Check on open", onOff(cfg.General.OnOpenCheck)},
		{"Notifications", onOff(cfg.Notifications.Enabled)},
		{"Theme", cfg.Appearance.Theme},
		{"Daemon address", cfg.Daemon.Addr},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-16s", r.label)),
			valueStyle.Render(r.value))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Run `autobill setup` to change settings."))

	return components.ContentCard("Settings", b.String(), cw)
}
