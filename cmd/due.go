package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
	"github.com/ARK-Community/AutoBillTracker/internal/notify"
)

var flagDueNotify bool

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show bills due now or recently overdue",
	Long:  "Lists unpaid bills due today or up to 3 days overdue, and optionally fires a desktop notification.",
	RunE:  runDue,
}

func init() {
	dueCmd.Flags().BoolVar(&flagDueNotify, "notify", false, "Also send a desktop notification (requires notifications enabled)")
	rootCmd.AddCommand(dueCmd)
}

func runDue(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	l, be, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	now := time.Now()
	due := notify.SelectDue(l.All(), now)
	if len(due) == 0 {
		fmt.Println("\n  Nothing due. Nice.")
		return nil
	}

	fmt.Println()
	for _, line := range dueReport(due, now) {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	if flagDueNotify {
		d := notify.NewDesktop(cfg.Notifications.Enabled)
		if !d.Granted() {
			fmt.Println("  Notifications are disabled. Enable them with `autobill config notify on`.")
			return nil
		}
		title, body := notify.Summary(due, now)
		d.Send(title, body)
	}
	return nil
}

// dueReport renders the bounded due listing: at most MaxSummaryLines
// entries, then one trailer line counting whatever was cut off.
func dueReport(due []model.Bill, now time.Time) []string {
	n := len(due)
	if n > notify.MaxSummaryLines {
		n = notify.MaxSummaryLines
	}

	lines := make([]string, 0, n+1)
	for _, b := range due[:n] {
		lines = append(lines, notify.SummaryLine(b, now))
	}
	if len(due) > n {
		lines = append(lines, fmt.Sprintf("...and %d more", len(due)-n))
	}
	return lines
}
