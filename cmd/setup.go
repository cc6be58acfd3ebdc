package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	backend := cfg.Storage.Backend
	filter := cfg.General.DefaultFilter
	notifications := cfg.Notifications.Enabled
	onOpen := cfg.General.OnOpenCheck

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should bills be stored?").
				Options(
					huh.NewOption("JSON file (simple, human-readable)", config.BackendJSON),
					huh.NewOption("SQLite database", config.BackendSQLite),
				).
				Value(&backend),
			huh.NewSelect[string]().
				Title("Default list filter").
				Options(
					huh.NewOption("all bills", "all"),
					huh.NewOption("unpaid only", "unpaid"),
					huh.NewOption("due within a week", "due"),
				).
				Value(&filter),
			huh.NewConfirm().
				Title("Enable desktop reminders?").
				Description("A notification fires when bills are due or recently overdue.").
				Value(&notifications),
			huh.NewConfirm().
				Title("Check for due bills on every launch?").
				Value(&onOpen),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Storage.Backend = backend
	cfg.General.DefaultFilter = filter
	cfg.Notifications.Enabled = notifications
	cfg.General.OnOpenCheck = onOpen

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `autobill setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
