package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
	"github.com/ARK-Community/AutoBillTracker/internal/notify"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/components"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
	"github.com/ARK-Community/AutoBillTracker/internal/view"
)

func (a App) renderUpcomingTab(cw int) string {
	t := theme.Active
	now := today()
	bills := a.ledger.All()

	var overdue, dueSoon, unpaid int
	unpaidTotal := decimal.Zero
	for _, b := range bills {
		switch view.Classify(b, now) {
		case model.StatusOverdue:
			overdue++
		case model.StatusDueSoon:
			dueSoon++
		}
		if !b.Paid {
			unpaid++
			unpaidTotal = unpaidTotal.Add(b.Amount)
		}
	}

	cards := []components.Metric{
		{Label: "Unpaid", Value: fmt.Sprintf("%d", unpaid), Hint: cli.FormatAmount(unpaidTotal)},
		{Label: "Overdue", Value: fmt.Sprintf("%d", overdue), Hint: ""},
		{Label: "Due soon", Value: fmt.Sprintf("%d", dueSoon), Hint: fmt.Sprintf("next %d days", model.DueSoonWindowDays)},
	}
	metricRow := components.MetricCardRow(cards, cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	// Needs-attention list: same selection the reminder uses
	due := notify.SelectDue(bills, now)
	var attention strings.Builder
	if len(due) == 0 {
		attention.WriteString(mutedStyle.Render("Nothing needs attention."))
	}
	for _, b := range due {
		attention.WriteString(rowStyle.Render(notify.SummaryLine(b, now)))
		attention.WriteString("\n")
	}
	attentionCard := components.ContentCard("Needs attention", attention.String(), cw)

	// Month progress: paid share of bills due this calendar month
	paidCount, monthCount := monthProgress(bills, now)
	var month strings.Builder
	barW := components.CardInnerWidth(cw) - 12
	if barW > 40 {
		barW = 40
	}
	frac := 0.0
	if monthCount > 0 {
		frac = float64(paidCount) / float64(monthCount)
	}
	month.WriteString(components.ProgressBar(frac, barW))
	month.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d paid", paidCount, monthCount)))
	monthCard := components.ContentCard(now.Format("January"), month.String(), cw)

	return lipgloss.JoinVertical(lipgloss.Left, metricRow, attentionCard, monthCard)
}

// monthProgress counts bills due in the reference month and how many of
// them are paid.
func monthProgress(bills []model.Bill, now time.Time) (paid, total int) {
	for _, b := range bills {
		due, err := dateutil.ParseDate(b.DueDate)
		if err != nil {
			continue
		}
		if due.Year() != now.Year() || due.Month() != now.Month() {
			continue
		}
		total++
		if b.Paid {
			paid++
		}
	}
	return paid, total
}
