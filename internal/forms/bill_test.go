package forms

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

func TestFromBill_SeedsValues(t *testing.T) {
	b := model.Bill{
		ID:         "b1",
		Name:       "Rent",
		Amount:     decimal.RequireFromString("1200.5"),
		DueDate:    "2024-06-01",
		Recurrence: model.RecurMonthly,
		Notes:      "landlord",
	}

	v := FromBill(b)
	if v.Name != "Rent" || v.Due != "2024-06-01" || v.Notes != "landlord" {
		t.Fatalf("FromBill = %+v, want seeded fields", v)
	}
	if v.Amount != "1200.50" {
		t.Fatalf("Amount = %q, want %q", v.Amount, "1200.50")
	}
	if v.Recur != string(model.RecurMonthly) {
		t.Fatalf("Recur = %q, want %q", v.Recur, model.RecurMonthly)
	}
}

func TestFromBill_ZeroBillDefaults(t *testing.T) {
	v := FromBill(model.Bill{})
	if v.Amount != "" {
		t.Fatalf("Amount = %q, want empty for a fresh add", v.Amount)
	}
	if v.Recur != string(model.RecurNone) {
		t.Fatalf("Recur = %q, want %q", v.Recur, model.RecurNone)
	}
}

func TestBillValues_Bill(t *testing.T) {
	v := BillValues{
		Name:   "Gym",
		Amount: "29.99",
		Due:    "  2024-07-15  ",
		Recur:  string(model.RecurYearly),
		Notes:  "annual plan",
	}

	b := v.Bill("b7")
	if b.ID != "b7" || b.Name != "Gym" || b.Notes != "annual plan" {
		t.Fatalf("Bill = %+v, want submitted fields", b)
	}
	if b.DueDate != "2024-07-15" {
		t.Fatalf("DueDate = %q, want trimmed %q", b.DueDate, "2024-07-15")
	}
	if !b.Amount.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("Amount = %s, want 29.99", b.Amount)
	}
	if b.Recurrence != model.RecurYearly {
		t.Fatalf("Recurrence = %q, want %q", b.Recurrence, model.RecurYearly)
	}
}

func TestValidators(t *testing.T) {
	cases := []struct {
		name     string
		validate func(string) error
		input    string
		wantErr  bool
	}{
		{"name ok", validateName, "Rent", false},
		{"name blank", validateName, "   ", true},
		{"amount ok", validateAmount, "42.50", false},
		{"amount zero", validateAmount, "0", true},
		{"amount junk", validateAmount, "lots", true},
		{"due ok", validateDue, "2024-06-01", false},
		{"due padded", validateDue, " 2024-06-01 ", false},
		{"due bad day", validateDue, "2024-02-30", true},
		{"due wrong shape", validateDue, "June 1", true},
	}
	for _, tc := range cases {
		err := tc.validate(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: validate(%q) err = %v, wantErr %v", tc.name, tc.input, err, tc.wantErr)
		}
	}
}
