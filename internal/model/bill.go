// Package model defines the domain types for tracked bills.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence is the cadence at which a paid bill regenerates its due date.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the known recurrence values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// Recurrences lists all recurrence values in display order.
var Recurrences = []Recurrence{RecurNone, RecurMonthly, RecurYearly}

// Bill is a single tracked obligation.
//
// DueDate is carried as the ISO yyyy-mm-dd calendar string; it is validated
// before a bill enters the ledger and stays in that form all the way to the
// persisted record.
type Bill struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    string          `json:"dueDate"`
	Recurrence Recurrence      `json:"recurrence"`
	Notes      string          `json:"notes,omitempty"`
	Paid       bool            `json:"paid"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
