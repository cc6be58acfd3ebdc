// Package cmd implements the autobill CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
	"github.com/ARK-Community/AutoBillTracker/internal/ledger"
	"github.com/ARK-Community/AutoBillTracker/internal/logging"
	"github.com/ARK-Community/AutoBillTracker/internal/notify"
	"github.com/ARK-Community/AutoBillTracker/internal/store"
)

var (
	flagStorePath string
	flagBackend   string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "autobill",
	Short: "Bill Tracker CLI",
	Long:  "Track recurring and one-off bills: due dates, paid state, and reminders.",
	RunE:  runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	logging.Setup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", "", "Bill store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: json or sqlite (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and reminder output")
}

// loadConfig merges the config file with the persistent flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unavailable, using defaults", "err", err)
	}
	if flagBackend != "" {
		cfg.Storage.Backend = strings.ToLower(flagBackend)
	}
	if flagStorePath != "" {
		cfg.Storage.Path = flagStorePath
	}
	return cfg
}

// openLedger opens the configured backend and seeds a ledger from it.
// A load failure degrades to an empty collection with a warning; bill
// management must keep working even when the store is unreadable.
func openLedger(cfg config.Config) (*ledger.Ledger, store.Backend, error) {
	be, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	l := ledger.New()
	bills, err := be.Load()
	if err != nil {
		slog.Warn("could not read bill store, starting empty", "err", err)
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "  Warning: bill store unreadable, starting with an empty list")
		}
	}
	l.Load(bills)
	return l, be, nil
}

// persist writes the ledger back to the store. The in-memory mutation has
// already happened; on failure the caller only warns that changes may not
// be durable.
func persist(be store.Backend, l *ledger.Ledger) {
	if err := be.Save(l.All()); err != nil {
		slog.Warn("bill store save failed", "err", err)
		fmt.Fprintln(os.Stderr, "  Warning: could not save bills, recent changes may be lost")
	}
}

// onOpenCheck runs the single reminder pass: select due bills and, when
// notifications are enabled, fire one desktop notification.
func onOpenCheck(cfg config.Config, l *ledger.Ledger) {
	due := notify.SelectDue(l.All(), time.Now())
	if len(due) == 0 {
		return
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d bill(s) due or overdue, run `autobill due` for details\n", len(due))
	}

	title, body := notify.Summary(due, time.Now())
	notify.NewDesktop(cfg.Notifications.Enabled).Send(title, body)
}

// resolveID expands a possibly-truncated bill id to the full id, requiring
// the prefix to be unambiguous.
func resolveID(l *ledger.Ledger, prefix string) (string, error) {
	if _, ok := l.Get(prefix); ok {
		return prefix, nil
	}

	var match string
	for _, b := range l.All() {
		if strings.HasPrefix(b.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("bill id %q is ambiguous", prefix)
			}
			match = b.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no bill matches id %q", prefix)
	}
	return match, nil
}
