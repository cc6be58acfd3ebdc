package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

var payCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Toggle a bill's paid state (recurring bills roll to their next due date)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPay,
}

func init() {
	rootCmd.AddCommand(payCmd)
}

func runPay(_ *cobra.Command, args []string) error {
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

	b, err := l.TogglePaid(id)
	if err != nil {
		return err
	}
	persist(be, l)

	switch {
	case b.Recurrence != model.RecurNone:
		fmt.Printf("  Paid %s · next due %s\n", b.Name, b.DueDate)
	case b.Paid:
		fmt.Printf("  Paid %s (%s)\n", b.Name, cli.FormatAmount(b.Amount))
	default:
		fmt.Printf("  Marked %s unpaid\n", b.Name)
	}
	return nil
}
