// Package forms builds the interactive bill form shared by the add/edit
// commands and the dashboard, so validation rules live in one place.
package forms

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// BillValues backs the bill form fields.
type BillValues struct {
	Name   string
	Amount string
	Due    string
	Recur  string
	Notes  string
}

// FromBill seeds form values from an existing bill; a zero bill seeds an
// empty add form.
func FromBill(b model.Bill) BillValues {
	v := BillValues{
		Name:  b.Name,
		Due:   b.DueDate,
		Recur: string(b.Recurrence),
		Notes: b.Notes,
	}
	if b.Amount.IsPositive() {
		v.Amount = b.Amount.StringFixed(2)
	}
	if v.Recur == "" {
		v.Recur = string(model.RecurNone)
	}
	return v
}

// Bill converts submitted values into an upsert draft under the given id.
// The ledger owns the rest of the record (paid state, timestamps).
func (v BillValues) Bill(id string) model.Bill {
	return model.Bill{
		ID:         id,
		Name:       v.Name,
		Amount:     cli.ParseAmount(v.Amount),
		DueDate:    strings.TrimSpace(v.Due),
		Recurrence: model.Recurrence(v.Recur),
		Notes:      v.Notes,
	}
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func validateAmount(s string) error {
	if !cli.ParseAmount(s).IsPositive() {
		return errors.New("amount must be a positive number")
	}
	return nil
}

func validateDue(s string) error {
	_, err := dateutil.ParseDate(strings.TrimSpace(s))
	return err
}

// NewBillForm builds the add/edit form over v. Fields bind by pointer, so
// v must outlive the form.
func NewBillForm(v *BillValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Amount").
				Placeholder("42.50").
				Value(&v.Amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Due date").
				Placeholder("yyyy-mm-dd").
				Value(&v.Due).
				Validate(validateDue),
			huh.NewSelect[string]().
				Title("Repeats").
				Options(
					huh.NewOption("never", string(model.RecurNone)),
					huh.NewOption("monthly", string(model.RecurMonthly)),
					huh.NewOption("yearly", string(model.RecurYearly)),
				).
				Value(&v.Recur),
			huh.NewText().
				Title("Notes").
				Value(&v.Notes).
				Lines(2),
		),
	)
}
