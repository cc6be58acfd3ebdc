package cmd

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
	"github.com/ARK-Community/AutoBillTracker/internal/notify"
)

func dueBills(n int) []model.Bill {
	bills := make([]model.Bill, 0, n)
	for i := 0; i < n; i++ {
		bills = append(bills, model.Bill{
			ID:      fmt.Sprintf("%d", i),
			Name:    fmt.Sprintf("Bill %d", i),
			Amount:  decimal.RequireFromString("10.00"),
			DueDate: "2024-06-10",
		})
	}
	return bills
}

func TestDueReport_TruncatesBeforeTrailer(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	lines := dueReport(dueBills(6), now)

	if len(lines) != notify.MaxSummaryLines+1 {
		t.Fatalf("got %d lines, want %d entries plus trailer", len(lines), notify.MaxSummaryLines)
	}
	for i, line := range lines[:notify.MaxSummaryLines] {
		if !strings.HasPrefix(line, fmt.Sprintf("Bill %d ", i)) {
			t.Errorf("line %d = %q, want entry for bill %d", i, line, i)
		}
	}
	if got := lines[len(lines)-1]; got != "...and 2 more" {
		t.Fatalf("trailer = %q, want %q", got, "...and 2 more")
	}
}

func TestDueReport_NoTrailerWhenEverythingFits(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	for _, n := range []int{1, notify.MaxSummaryLines} {
		lines := dueReport(dueBills(n), now)
		if len(lines) != n {
			t.Fatalf("%d bills: got %d lines, want %d", n, len(lines), n)
		}
		for _, line := range lines {
			if strings.Contains(line, "more") {
				t.Fatalf("%d bills: unexpected trailer %q", n, line)
			}
		}
	}
}
