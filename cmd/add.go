package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/forms"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

var (
	flagAddName   string
	flagAddAmount string
	flagAddDue    string
	flagAddRecur  string
	flagAddNotes  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a bill (interactive form unless --name is given)",
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddName, "name", "", "Bill name")
	addCmd.Flags().StringVar(&flagAddAmount, "amount", "", "Amount, e.g. 42.50")
	addCmd.Flags().StringVar(&flagAddDue, "due", "", "Due date, yyyy-mm-dd")
	addCmd.Flags().StringVar(&flagAddRecur, "recur", "none", "Recurrence: none, monthly, yearly")
	addCmd.Flags().StringVar(&flagAddNotes, "notes", "", "Free-text notes")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	draft := model.Bill{
		Name:       flagAddName,
		Amount:     cli.ParseAmount(flagAddAmount),
		DueDate:    flagAddDue,
		Recurrence: model.Recurrence(strings.ToLower(flagAddRecur)),
		Notes:      flagAddNotes,
	}

	if flagAddName == "" {
		if err := runBillForm(&draft); err != nil {
			return err
		}
	}

	b, err := l.Upsert(draft)
	if err != nil {
		return err
	}
	persist(be, l)

	fmt.Printf("  Added %s · %s due %s (%s)\n", b.Name, cli.FormatAmount(b.Amount), b.DueDate, b.Recurrence)
	fmt.Printf("  ID: %s\n", cli.ShortID(b.ID))
	return nil
}

// runBillForm collects or edits bill fields through the shared form, writing
// the result back into draft.
func runBillForm(draft *model.Bill) error {
	vals := forms.FromBill(*draft)
	if err := forms.NewBillForm(&vals).Run(); err != nil {
		return err
	}
	*draft = vals.Bill(draft.ID)
	return nil
}
