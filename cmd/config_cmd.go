package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configNotifyCmd = &cobra.Command{
	Use:   "notify <on|off>",
	Short: "Enable or disable desktop reminders",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigNotify,
}

func init() {
	configCmd.AddCommand(configNotifyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default filter: %s\n", cfg.General.DefaultFilter)
	fmt.Printf("    On-open check:  %v\n", cfg.General.OnOpenCheck)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Backend: %s\n", cfg.Storage.Backend)
	fmt.Printf("    Path:    %s\n", cfg.StorePath())
	fmt.Println()

	fmt.Println("  [Notifications]")
	fmt.Printf("    Enabled: %v\n", cfg.Notifications.Enabled)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Addr:          %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.PollIntervalSec)
	fmt.Println()

	fmt.Println("  Run `autobill setup` to reconfigure.")
	return nil
}

func runConfigNotify(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "on":
		cfg.Notifications.Enabled = true
	case "off":
		cfg.Notifications.Enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Desktop reminders: %s\n", args[0])
	return nil
}
