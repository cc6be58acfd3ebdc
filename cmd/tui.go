package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/tui"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dash"},
	Short:   "Interactive bill dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	if cfg.General.OnOpenCheck {
		onOpenCheck(cfg, l)
	}

	app := tui.NewApp(cfg, l, be)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
