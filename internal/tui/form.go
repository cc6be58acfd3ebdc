package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ARK-Community/AutoBillTracker/internal/forms"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// startBillForm opens the add/edit form seeded from an existing bill; a zero
// bill starts a fresh add.
func (a App) startBillForm(seed model.Bill) (tea.Model, tea.Cmd, bool) {
	a.formEditID = seed.ID
	vals := forms.FromBill(seed)
	a.formVals = &vals

	a.billForm = forms.NewBillForm(a.formVals)
	if a.width > 0 {
		a.billForm = a.billForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.billForm.Init(), true
}

func (a App) updateBillForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.billForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.billForm = f
	}

	if a.billForm.State == huh.StateCompleted {
		draft := a.formVals.Bill(a.formEditID)
		if _, err := a.ledger.Upsert(draft); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.persist()
		}
		a.billForm = nil
		a.formVals = nil
		a.formEditID = ""
		a.clampBillsCursor()
		return a, nil
	}

	if a.billForm.State == huh.StateAborted {
		a.billForm = nil
		a.formVals = nil
		a.formEditID = ""
		return a, nil
	}

	return a, cmd
}
