// Package notify selects bills eligible for a due reminder and delivers
// best-effort desktop notifications.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// Reminder window: due today, due within the last ReminderLookbackDays, or
// anywhere in between. Bills older than the lookback stop nagging.
const ReminderLookbackDays = 3

// MaxSummaryLines bounds the notification body.
const MaxSummaryLines = 4

// SelectDue returns the unpaid bills inside the reminder window, in store
// order. An empty result means no notification fires.
func SelectDue(bills []model.Bill, today time.Time) []model.Bill {
	var due []model.Bill
	for _, b := range bills {
		if b.Paid {
			continue
		}
		days, ok := dateutil.DaysUntilDate(b.DueDate, today)
		if !ok {
			continue
		}
		if days >= -ReminderLookbackDays && days <= 0 {
			due = append(due, b)
		}
	}
	return due
}

// SummaryLine formats one reminder entry: `<name> (<amount>) <today|Nd overdue>`.
func SummaryLine(b model.Bill, today time.Time) string {
	suffix := "today"
	if days, ok := dateutil.DaysUntilDate(b.DueDate, today); ok && days < 0 {
		suffix = fmt.Sprintf("%dd overdue", -days)
	}
	return fmt.Sprintf("%s ($%s) %s", b.Name, b.Amount.StringFixed(2), suffix)
}

// Summary builds the notification title and body for the due subset.
// The body is truncated to the first MaxSummaryLines entries.
func Summary(due []model.Bill, today time.Time) (title, body string) {
	if len(due) == 0 {
		return "", ""
	}
	title = fmt.Sprintf("%d bill(s) need attention", len(due))

	n := len(due)
	if n > MaxSummaryLines {
		n = MaxSummaryLines
	}
	lines := make([]string, 0, n)
	for _, b := range due[:n] {
		lines = append(lines, SummaryLine(b, today))
	}
	return title, strings.Join(lines, "\n")
}
