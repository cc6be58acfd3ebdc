// Package ledger owns the in-memory bill collection and its lifecycle
// transitions. It is the sole mutator; persistence and rendering only ever
// see copies.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// Ledger holds the bill collection in insertion order.
type Ledger struct {
	bills []model.Bill
	index map[string]int
	now   func() time.Time
}

// New returns an empty ledger using the wall clock.
func New() *Ledger {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty ledger with an injectable clock for tests.
func NewWithClock(now func() time.Time) *Ledger {
	return &Ledger{index: make(map[string]int), now: now}
}

// Load seeds the ledger from a persisted collection, preserving order.
// Records with a duplicate or empty id are skipped rather than clobbering
// earlier entries.
func (l *Ledger) Load(bills []model.Bill) {
	for _, b := range bills {
		if b.ID == "" {
			continue
		}
		if _, dup := l.index[b.ID]; dup {
			continue
		}
		l.index[b.ID] = len(l.bills)
		l.bills = append(l.bills, b)
	}
}

// Upsert validates draft and inserts or replaces one record.
//
// Insert (empty or unknown id): a fresh id is generated when absent, paid
// starts false and createdAt is set. Update: name, amount, due date,
// recurrence and notes are replaced while paid and createdAt carry over from
// the prior record. updatedAt is refreshed either way.
func (l *Ledger) Upsert(draft model.Bill) (model.Bill, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return model.Bill{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !draft.Amount.IsPositive() {
		return model.Bill{}, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if _, err := dateutil.ParseDate(draft.DueDate); err != nil {
		return model.Bill{}, &ValidationError{Field: "dueDate", Reason: "must be a yyyy-mm-dd calendar date"}
	}
	if !draft.Recurrence.Valid() {
		return model.Bill{}, &ValidationError{Field: "recurrence", Reason: "must be none, monthly or yearly"}
	}

	now := l.now()
	b := model.Bill{
		ID:         draft.ID,
		Name:       name,
		Amount:     draft.Amount,
		DueDate:    draft.DueDate,
		Recurrence: draft.Recurrence,
		Notes:      strings.TrimSpace(draft.Notes),
		UpdatedAt:  now,
	}

	if i, ok := l.index[b.ID]; ok && b.ID != "" {
		prior := l.bills[i]
		b.Paid = prior.Paid
		b.CreatedAt = prior.CreatedAt
		l.bills[i] = b
		return b, nil
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Paid = false
	b.CreatedAt = now
	l.index[b.ID] = len(l.bills)
	l.bills = append(l.bills, b)
	return b, nil
}

// Delete removes the bill with the given id. Deleting an absent id is a
// no-op and returns false.
func (l *Ledger) Delete(id string) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.bills = append(l.bills[:i], l.bills[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.bills); j++ {
		l.index[l.bills[j].ID] = j
	}
	return true
}

// TogglePaid flips the paid state of a bill.
//
// Paying a recurring bill is one atomic transition: the due date advances to
// its next occurrence and paid stays false, so a recurring bill is never
// observable as paid. Paying a one-off sets paid; toggling a paid one-off
// clears it.
func (l *Ledger) TogglePaid(id string) (model.Bill, error) {
	i, ok := l.index[id]
	if !ok {
		return model.Bill{}, &NotFoundError{ID: id}
	}

	b := l.bills[i]
	b.UpdatedAt = l.now()

	if b.Paid {
		b.Paid = false
	} else if b.Recurrence != model.RecurNone {
		next, err := dateutil.NextOccurrenceDate(b.DueDate, b.Recurrence)
		if err != nil {
			// Cannot happen for a validated record; leave the date alone.
			next = b.DueDate
		}
		b.DueDate = next
		b.Paid = false
	} else {
		b.Paid = true
	}

	l.bills[i] = b
	return b, nil
}

// Get returns the bill with the given id.
func (l *Ledger) Get(id string) (model.Bill, bool) {
	i, ok := l.index[id]
	if !ok {
		return model.Bill{}, false
	}
	return l.bills[i], true
}

// All returns a copy of the collection in insertion order.
func (l *Ledger) All() []model.Bill {
	out := make([]model.Bill, len(l.bills))
	copy(out, l.bills)
	return out
}

// Len returns the number of bills.
func (l *Ledger) Len() int {
	return len(l.bills)
}

// UnpaidTotal sums the amounts of all unpaid bills.
func (l *Ledger) UnpaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range l.bills {
		if !b.Paid {
			total = total.Add(b.Amount)
		}
	}
	return total
}
