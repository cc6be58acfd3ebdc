package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a bill through the interactive form",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	id, err := resolveID(l, args[0])
	if err != nil {
		return err
	}
	draft, _ := l.Get(id)

	if err := runBillForm(&draft); err != nil {
		return err
	}

	// Paid state and creation time are preserved by the ledger; the form
	// only replaces the editable fields.
	b, err := l.Upsert(draft)
	if err != nil {
		return err
	}
	persist(be, l)

	fmt.Printf("  Updated %s · %s due %s (%s)\n", b.Name, cli.FormatAmount(b.Amount), b.DueDate, b.Recurrence)
	return nil
}
