package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

func testClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	return func() time.Time { return at }
}

func draft(name, amount, due string) model.Bill {
	return model.Bill{
		Name:       name,
		Amount:     decimal.RequireFromString(amount),
		DueDate:    due,
		Recurrence: model.RecurNone,
	}
}

func mustUpsert(t *testing.T, l *Ledger, b model.Bill) model.Bill {
	t.Helper()
	out, err := l.Upsert(b)
	if err != nil {
		t.Fatalf("Upsert(%s): %v", b.Name, err)
	}
	return out
}

func TestUpsert_Insert(t *testing.T) {
	l := NewWithClock(testClock())

	b := mustUpsert(t, l, draft("Rent", "1200.00", "2024-06-05"))

	if b.ID == "" {
		t.Fatal("Upsert did not assign an id")
	}
	if b.Paid {
		t.Fatal("new bill starts paid")
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
}

func TestUpsert_Validation(t *testing.T) {
	l := NewWithClock(testClock())

	cases := []struct {
		name string
		bill model.Bill
	}{
		{"empty name", draft("   ", "10.00", "2024-06-05")},
		{"zero amount", draft("Rent", "0", "2024-06-05")},
		{"negative amount", draft("Rent", "-5.00", "2024-06-05")},
		{"bad date", draft("Rent", "10.00", "05/06/2024")},
		{"impossible date", draft("Rent", "10.00", "2024-02-30")},
		{"bad recurrence", func() model.Bill {
			b := draft("Rent", "10.00", "2024-06-05")
			b.Recurrence = "weekly"
			return b
		}()},
	}

	for _, c := range cases {
		_, err := l.Upsert(c.bill)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: err = %v, want ValidationError", c.name, err)
		}
	}

	if l.Len() != 0 {
		t.Fatalf("rejected drafts changed the ledger, Len = %d", l.Len())
	}
}

func TestUpsert_UpdatePreservesPaidAndCreatedAt(t *testing.T) {
	l := NewWithClock(testClock())

	b := mustUpsert(t, l, draft("Internet", "49.99", "2024-06-10"))
	if _, err := l.TogglePaid(b.ID); err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}

	edit := draft("Internet + TV", "59.99", "2024-06-12")
	edit.ID = b.ID
	updated := mustUpsert(t, l, edit)

	if !updated.Paid {
		t.Fatal("update cleared the paid flag")
	}
	if !updated.CreatedAt.Equal(b.CreatedAt) {
		t.Fatal("update changed createdAt")
	}
	if updated.Name != "Internet + TV" {
		t.Fatalf("Name = %q, want updated name", updated.Name)
	}
	if l.Len() != 1 {
		t.Fatalf("update inserted a duplicate, Len = %d", l.Len())
	}
}

func TestUpsert_UnknownIDInserts(t *testing.T) {
	l := NewWithClock(testClock())

	b := draft("Water", "30.00", "2024-06-20")
	b.ID = "imported-7"
	out := mustUpsert(t, l, b)

	if out.ID != "imported-7" {
		t.Fatalf("ID = %q, want the provided id kept", out.ID)
	}
	if got, ok := l.Get("imported-7"); !ok || got.Name != "Water" {
		t.Fatal("inserted bill not retrievable under provided id")
	}
}

func TestUpsert_TrimsNameAndNotes(t *testing.T) {
	l := NewWithClock(testClock())

	b := draft("  Rent  ", "1200.00", "2024-06-05")
	b.Notes = "  shared flat  "
	out := mustUpsert(t, l, b)

	if out.Name != "Rent" {
		t.Fatalf("Name = %q, want trimmed", out.Name)
	}
	if out.Notes != "shared flat" {
		t.Fatalf("Notes = %q, want trimmed", out.Notes)
	}
}

func TestDelete(t *testing.T) {
	l := NewWithClock(testClock())

	a := mustUpsert(t, l, draft("A", "1.00", "2024-06-01"))
	b := mustUpsert(t, l, draft("B", "2.00", "2024-06-02"))
	c := mustUpsert(t, l, draft("C", "3.00", "2024-06-03"))

	if !l.Delete(b.ID) {
		t.Fatal("Delete returned false for existing id")
	}
	if l.Delete(b.ID) {
		t.Fatal("second Delete returned true")
	}
	if l.Delete("no-such-id") {
		t.Fatal("Delete of unknown id returned true")
	}

	all := l.All()
	if len(all) != 2 || all[0].ID != a.ID || all[1].ID != c.ID {
		t.Fatalf("order after delete = %v", all)
	}
	// Index still resolves after reindexing
	if got, ok := l.Get(c.ID); !ok || got.Name != "C" {
		t.Fatal("Get(c) failed after delete")
	}
}

func TestTogglePaid_OneOff(t *testing.T) {
	l := NewWithClock(testClock())
	b := mustUpsert(t, l, draft("Dentist", "80.00", "2024-06-03"))

	paid, err := l.TogglePaid(b.ID)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if !paid.Paid {
		t.Fatal("one-off not marked paid")
	}
	if paid.DueDate != "2024-06-03" {
		t.Fatalf("one-off due date moved to %s", paid.DueDate)
	}

	unpaid, err := l.TogglePaid(b.ID)
	if err != nil {
		t.Fatalf("TogglePaid back: %v", err)
	}
	if unpaid.Paid {
		t.Fatal("toggle back left the bill paid")
	}
}

func TestTogglePaid_RecurringAdvances(t *testing.T) {
	l := NewWithClock(testClock())

	b := draft("Rent", "1200.00", "2024-01-31")
	b.Recurrence = model.RecurMonthly
	ins := mustUpsert(t, l, b)

	out, err := l.TogglePaid(ins.ID)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if out.Paid {
		t.Fatal("recurring bill observable as paid")
	}
	if out.DueDate != "2024-02-29" {
		t.Fatalf("DueDate = %s, want 2024-02-29", out.DueDate)
	}

	out, err = l.TogglePaid(ins.ID)
	if err != nil {
		t.Fatalf("TogglePaid again: %v", err)
	}
	if out.DueDate != "2024-03-29" {
		t.Fatalf("DueDate = %s, want 2024-03-29", out.DueDate)
	}
}

func TestTogglePaid_Yearly(t *testing.T) {
	l := NewWithClock(testClock())

	b := draft("Insurance", "300.00", "2024-02-29")
	b.Recurrence = model.RecurYearly
	ins := mustUpsert(t, l, b)

	out, err := l.TogglePaid(ins.ID)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if out.DueDate != "2025-02-28" {
		t.Fatalf("DueDate = %s, want 2025-02-28", out.DueDate)
	}
}

func TestTogglePaid_NotFound(t *testing.T) {
	l := NewWithClock(testClock())
	_, err := l.TogglePaid("missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestLoad_SkipsDuplicatesAndEmptyIDs(t *testing.T) {
	l := New()

	l.Load([]model.Bill{
		{ID: "a", Name: "First"},
		{ID: "", Name: "Anonymous"},
		{ID: "a", Name: "Clobber"},
		{ID: "b", Name: "Second"},
	})

	all := l.All()
	if len(all) != 2 {
		t.Fatalf("Len = %d, want 2", len(all))
	}
	if got, _ := l.Get("a"); got.Name != "First" {
		t.Fatalf("duplicate id clobbered the first record: %q", got.Name)
	}
	if all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("order = %v", all)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	l := NewWithClock(testClock())
	mustUpsert(t, l, draft("A", "1.00", "2024-06-01"))

	out := l.All()
	out[0].Name = "mutated"

	if got, _ := l.Get(out[0].ID); got.Name == "mutated" {
		t.Fatal("All exposed internal storage")
	}
}

func TestUnpaidTotal(t *testing.T) {
	l := NewWithClock(testClock())

	a := mustUpsert(t, l, draft("A", "100.00", "2024-06-01"))
	mustUpsert(t, l, draft("B", "50.00", "2024-06-02"))

	if _, err := l.TogglePaid(a.ID); err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}

	want := decimal.RequireFromString("50.00")
	if got := l.UnpaidTotal(); !got.Equal(want) {
		t.Fatalf("UnpaidTotal = %s, want %s", got, want)
	}
}
