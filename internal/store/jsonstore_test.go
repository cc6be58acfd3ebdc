package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

func sampleBills() []model.Bill {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Bill{
		{
			ID:         "a",
			Name:       "Rent",
			Amount:     decimal.RequireFromString("1200.00"),
			DueDate:    "2024-06-05",
			Recurrence: model.RecurMonthly,
			CreatedAt:  at,
			UpdatedAt:  at,
		},
		{
			ID:         "b",
			Name:       "Dentist",
			Amount:     decimal.RequireFromString("80.50"),
			DueDate:    "2024-06-20",
			Recurrence: model.RecurNone,
			Notes:      "checkup",
			Paid:       true,
			CreatedAt:  at,
			UpdatedAt:  at,
		},
	}
}

func assertBillsEqual(t *testing.T, got, want []model.Bill) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("loaded %d bills, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Name != w.Name || g.DueDate != w.DueDate ||
			g.Recurrence != w.Recurrence || g.Notes != w.Notes || g.Paid != w.Paid {
			t.Errorf("bill[%d] = %+v, want %+v", i, g, w)
		}
		if !g.Amount.Equal(w.Amount) {
			t.Errorf("bill[%d].Amount = %s, want %s", i, g.Amount, w.Amount)
		}
	}
}

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	s := OpenJSON(path)

	want := sampleBills()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertBillsEqual(t, got, want)
}

func TestJSONStore_MissingFileIsEmpty(t *testing.T) {
	s := OpenJSON(filepath.Join(t.TempDir(), "nope", "bills.json"))

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("loaded %d bills from missing file", len(got))
	}
}

func TestJSONStore_DocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	s := OpenJSON(path)

	if err := s.Save(sampleBills()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if !strings.Contains(string(data), `"bills"`) {
		t.Fatalf("document missing bills key: %s", data)
	}
}

func TestJSONStore_SaveNilWritesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	s := OpenJSON(path)

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if !strings.Contains(string(data), `"bills": []`) {
		t.Fatalf("nil save produced: %s", data)
	}
}

func TestJSONStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenJSON(path).Load(); err == nil {
		t.Fatal("Load of corrupt file returned nil error")
	}
}

func TestJSONStore_MissingKeyIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.json")
	if err := os.WriteFile(path, []byte(`{"other": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := OpenJSON(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("loaded %d bills from keyless document", len(got))
	}
}
