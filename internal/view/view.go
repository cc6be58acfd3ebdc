// Package view derives the filtered, ordered bill view and its aggregates.
// Everything here is pure: bills in, result out, no ledger access.
package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// Filter restricts the view by paid/urgency state on top of the text query.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterDue     Filter = "due"
	FilterOverdue Filter = "overdue"
	FilterPaid    Filter = "paid"
	FilterUnpaid  Filter = "unpaid"
)

// Filters lists all filters in cycle order.
var Filters = []Filter{FilterAll, FilterDue, FilterOverdue, FilterPaid, FilterUnpaid}

// ParseFilter maps a user-supplied string to a Filter, defaulting to all.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, true
	}
	for _, known := range Filters {
		if f == known {
			return f, true
		}
	}
	return FilterAll, false
}

// Classify maps a bill and a reference date to its urgency status.
// Paid wins over any date math; otherwise the signed day offset to the due
// date picks overdue, due-soon (within 7 days inclusive) or ok.
func Classify(b model.Bill, today time.Time) model.Status {
	if b.Paid {
		return model.StatusPaid
	}
	days, ok := dateutil.DaysUntilDate(b.DueDate, today)
	if !ok {
		return model.StatusOK
	}
	switch {
	case days < 0:
		return model.StatusOverdue
	case days <= model.DueSoonWindowDays:
		return model.StatusDueSoon
	default:
		return model.StatusOK
	}
}

// Result is the renderable view: visible bills in store order plus the
// aggregates shown in every list footer.
type Result struct {
	Visible     []model.Bill
	Count       int
	UnpaidTotal decimal.Decimal
}

// Compute filters bills by a case-insensitive substring query over name and
// notes, then by the status filter. Visible keeps the store's insertion
// order: filtering never re-sorts, so rows stay put as the user types.
// UnpaidTotal sums unpaid visible amounts only, even when the filter admits
// paid bills.
func Compute(bills []model.Bill, query string, filter Filter, today time.Time) Result {
	q := strings.ToLower(strings.TrimSpace(query))

	res := Result{UnpaidTotal: decimal.Zero}
	for _, b := range bills {
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Name), q) &&
			!strings.Contains(strings.ToLower(b.Notes), q) {
			continue
		}
		if !matchesFilter(b, filter, today) {
			continue
		}
		res.Visible = append(res.Visible, b)
		if !b.Paid {
			res.UnpaidTotal = res.UnpaidTotal.Add(b.Amount)
		}
	}
	res.Count = len(res.Visible)
	return res
}

func matchesFilter(b model.Bill, filter Filter, today time.Time) bool {
	switch filter {
	case FilterDue:
		return !b.Paid && Classify(b, today) == model.StatusDueSoon
	case FilterOverdue:
		return !b.Paid && Classify(b, today) == model.StatusOverdue
	case FilterPaid:
		return b.Paid
	case FilterUnpaid:
		return !b.Paid
	default:
		return true
	}
}
