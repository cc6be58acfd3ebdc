package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	// Deleting an unknown id is a no-op, but for exact ids only; a typo'd
	// prefix should still tell the user nothing matched.
	id := args[0]
	if resolved, err := resolveID(l, id); err == nil {
		id = resolved
	}

	if l.Delete(id) {
		persist(be, l)
		fmt.Printf("  Deleted %s\n", id)
	} else {
		fmt.Printf("  No bill with id %s\n", id)
	}
	return nil
}
