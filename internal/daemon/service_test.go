package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

type fakeLoader struct {
	bills []model.Bill
	err   error
}

func (f *fakeLoader) Load() ([]model.Bill, error) {
	return f.bills, f.err
}

func bill(id, amount, due string, paid bool) model.Bill {
	return model.Bill{
		ID:      id,
		Name:    "Bill " + id,
		Amount:  decimal.RequireFromString(amount),
		DueDate: due,
		Paid:    paid,
	}
}

func TestSnapshotBills(t *testing.T) {
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	bills := []model.Bill{
		bill("1", "100.00", "2024-06-01", false), // overdue
		bill("2", "50.00", "2024-06-10", false),  // due today
		bill("3", "25.00", "2024-06-15", false),  // due soon
		bill("4", "75.00", "2024-07-20", false),  // ok
		bill("5", "10.00", "2024-06-10", true),   // paid
	}

	snap := snapshotBills(bills, at)

	if snap.Bills != 5 {
		t.Fatalf("Bills = %d, want 5", snap.Bills)
	}
	if snap.Unpaid != 4 {
		t.Fatalf("Unpaid = %d, want 4", snap.Unpaid)
	}
	if snap.Overdue != 1 {
		t.Fatalf("Overdue = %d, want 1", snap.Overdue)
	}
	if snap.DueSoon != 2 {
		t.Fatalf("DueSoon = %d, want 2", snap.DueSoon)
	}
	if snap.DueToday != 1 {
		t.Fatalf("DueToday = %d, want 1", snap.DueToday)
	}
	if snap.UnpaidTotal != "250.00" {
		t.Fatalf("UnpaidTotal = %s, want 250.00", snap.UnpaidTotal)
	}
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Bills: 5, Unpaid: 4, Overdue: 1, DueSoon: 2}
	curr := Snapshot{Bills: 6, Unpaid: 4, Overdue: 2, DueSoon: 1}

	delta := diffSnapshots(prev, curr)
	if delta.Bills != 1 {
		t.Fatalf("Bills delta = %d, want 1", delta.Bills)
	}
	if delta.Unpaid != 0 {
		t.Fatalf("Unpaid delta = %d, want 0", delta.Unpaid)
	}
	if delta.Overdue != 1 {
		t.Fatalf("Overdue delta = %d, want 1", delta.Overdue)
	}
	if delta.DueSoon != -1 {
		t.Fatalf("DueSoon delta = %d, want -1", delta.DueSoon)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots produced a non-zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Store:        &fakeLoader{},
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnce_EmitsOnChangeOnly(t *testing.T) {
	loader := &fakeLoader{bills: []model.Bill{bill("1", "10.00", "2099-01-01", false)}}
	s := New(Config{Store: loader, Interval: 10 * time.Second})

	s.pollOnce()
	s.pollOnce() // unchanged, no new event

	s.mu.RLock()
	n := len(s.events)
	s.mu.RUnlock()
	if n != 1 {
		t.Fatalf("events after unchanged polls = %d, want 1", n)
	}

	loader.bills = append(loader.bills, bill("2", "20.00", "2099-01-01", false))
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) != 2 {
		t.Fatalf("events after change = %d, want 2", len(s.events))
	}
	if s.events[0].Type != "snapshot" || s.events[1].Type != "bills_changed" {
		t.Fatalf("event types = [%s, %s]", s.events[0].Type, s.events[1].Type)
	}
	if s.events[1].Delta.Bills != 1 {
		t.Fatalf("change delta Bills = %d, want 1", s.events[1].Delta.Bills)
	}
}

func TestPollOnce_LoadErrorKeepsSnapshot(t *testing.T) {
	loader := &fakeLoader{bills: []model.Bill{bill("1", "10.00", "2099-01-01", false)}}
	s := New(Config{Store: loader, Interval: 10 * time.Second})

	s.pollOnce()
	loader.err = errors.New("disk gone")
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("load error not recorded")
	}
	if st.Summary.Bills != 1 {
		t.Fatalf("failed poll clobbered the snapshot: %+v", st.Summary)
	}
	if st.PollCount != 2 {
		t.Fatalf("PollCount = %d, want 2", st.PollCount)
	}
}

func TestEscapeMarkup(t *testing.T) {
	in := `<script>alert("x&y")</script> O'Neill`
	want := "&lt;script&gt;alert(&quot;x&amp;y&quot;)&lt;/script&gt; O&#39;Neill"
	if got := escapeMarkup(in); got != want {
		t.Fatalf("escapeMarkup = %q, want %q", got, want)
	}
}
