package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/view"
)

var (
	flagListStatus string
	flagListQuery  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills with filtering and totals",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListStatus, "status", "s", "", "Status filter: all, due, overdue, paid, unpaid")
	listCmd.Flags().StringVarP(&flagListQuery, "query", "Q", "", "Substring match on name or notes")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	if cfg.General.OnOpenCheck {
		onOpenCheck(cfg, l)
	}

	status := flagListStatus
	if status == "" {
		status = cfg.General.DefaultFilter
	}
	filter, known := view.ParseFilter(status)
	if !known {
		return fmt.Errorf("unknown status filter %q", status)
	}

	now := time.Now()
	res := view.Compute(l.All(), flagListQuery, filter, now)

	if res.Count == 0 {
		fmt.Println("\n  No bills match.")
		fmt.Println("  Run `autobill add` to track one.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  %s", filter)))
	fmt.Println()

	rows := make([][]string, 0, len(res.Visible)+2)
	for _, b := range res.Visible {
		dueCell := b.DueDate
		if days, ok := dateutil.DaysUntilDate(b.DueDate, now); ok && !b.Paid {
			dueCell = fmt.Sprintf("%s (%s)", b.DueDate, cli.FormatRelativeDays(days))
		}
		rows = append(rows, []string{
			cli.ShortID(b.ID),
			b.Name,
			cli.FormatAmount(b.Amount),
			dueCell,
			string(b.Recurrence),
			cli.RenderStatus(view.Classify(b, now)),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		fmt.Sprintf("%d bill(s)", res.Count),
		"unpaid total",
		cli.FormatAmount(res.UnpaidTotal),
		"", "", "",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Amount", "Due", "Repeat", "Status"},
		Rows:    rows,
	}))

	return nil
}
