package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/dateutil"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/components"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
	"github.com/ARK-Community/AutoBillTracker/internal/view"
)

// billsState holds the bills tab state.
type billsState struct {
	cursor      int
	offset      int // scroll offset for the list
	filter      view.Filter
	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func newBillsState(filter view.Filter) billsState {
	return billsState{filter: filter}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name or notes..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/ "
	return ti
}

// visibleBills computes the current filtered view.
func (a App) visibleBills() view.Result {
	return view.Compute(a.ledger.All(), a.bills.searchQuery, a.bills.filter, today())
}

// selectedBill returns the bill under the cursor, if any.
func (a App) selectedBill() (model.Bill, bool) {
	res := a.visibleBills()
	if a.bills.cursor < 0 || a.bills.cursor >= len(res.Visible) {
		return model.Bill{}, false
	}
	return res.Visible[a.bills.cursor], true
}

func (a *App) clampBillsCursor() {
	n := len(a.visibleBills().Visible)
	if a.bills.cursor >= n {
		a.bills.cursor = n - 1
	}
	if a.bills.cursor < 0 {
		a.bills.cursor = 0
	}
}

// updateBillsKeys handles bills tab keys, reporting whether it consumed the
// key so tab shortcuts stay live for everything else.
func (a App) updateBillsKeys(key string) (tea.Model, tea.Cmd, bool) {
	visible := a.visibleBills().Visible

	switch key {
	case "j", "down":
		if a.bills.cursor < len(visible)-1 {
			a.bills.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.bills.cursor > 0 {
			a.bills.cursor--
		}
		return a, nil, true
	case "g":
		a.bills.cursor = 0
		a.bills.offset = 0
		return a, nil, true
	case "G":
		a.bills.cursor = len(visible) - 1
		if a.bills.cursor < 0 {
			a.bills.cursor = 0
		}
		return a, nil, true

	case "/":
		a.bills.searching = true
		a.bills.searchInput = newSearchInput()
		a.bills.searchInput.SetValue(a.bills.searchQuery)
		a.bills.searchInput.Focus()
		return a, a.bills.searchInput.Cursor.BlinkCmd(), true

	case "esc":
		if a.bills.searchQuery != "" {
			a.bills.searchQuery = ""
			a.bills.cursor = 0
			a.bills.offset = 0
		}
		return a, nil, true

	case "f":
		for i, f := range view.Filters {
			if f == a.bills.filter {
				a.bills.filter = view.Filters[(i+1)%len(view.Filters)]
				break
			}
		}
		a.clampBillsCursor()
		return a, nil, true

	case "a":
		return a.startBillForm(model.Bill{})

	case "e":
		if sel, ok := a.selectedBill(); ok {
			return a.startBillForm(sel)
		}
		return a, nil, true

	case "p", " ":
		if sel, ok := a.selectedBill(); ok {
			if _, err := a.ledger.TogglePaid(sel.ID); err == nil {
				a.persist()
			}
		}
		return a, nil, true

	case "d":
		if sel, ok := a.selectedBill(); ok {
			a.confirmID = sel.ID
			a.confirmName = sel.Name
		}
		return a, nil, true
	}

	return a, nil, false
}

// updateBillsSearch handles key events while the search input is focused.
func (a App) updateBillsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.bills.searchQuery = strings.TrimSpace(a.bills.searchInput.Value())
		a.bills.searching = false
		a.bills.cursor = 0
		a.bills.offset = 0
		return a, nil
	case "esc":
		a.bills.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.bills.searchInput, cmd = a.bills.searchInput.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		a.ledger.Delete(a.confirmID)
		a.persist()
		a.clampBillsCursor()
	}
	a.confirmID = ""
	a.confirmName = ""
	return a, nil
}

func (a App) renderBillsTab(cw, h int) string {
	t := theme.Active
	res := a.visibleBills()

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	inner := components.CardInnerWidth(cw)

	var body strings.Builder

	if a.bills.searching {
		body.WriteString(a.bills.searchInput.View())
		body.WriteString("\n")
	} else if a.bills.searchQuery != "" {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("/ %s  (esc clears)", a.bills.searchQuery)))
		body.WriteString("\n")
	}

	nameW := inner - 40
	if nameW < 12 {
		nameW = 12
	}

	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %10s  %-12s %-8s %s",
		nameW, "NAME", "AMOUNT", "DUE", "REPEAT", "STATUS")))
	body.WriteString("\n")

	if len(res.Visible) == 0 {
		body.WriteString(mutedStyle.Render("No bills match. Press [a] to add one."))
	}

	// card border + title + header row + footer
	visible := h - 7
	if a.bills.searching || a.bills.searchQuery != "" {
		visible--
	}
	if visible < 3 {
		visible = 3
	}

	offset := a.bills.offset
	if a.bills.cursor < offset {
		offset = a.bills.cursor
	}
	if a.bills.cursor >= offset+visible {
		offset = a.bills.cursor - visible + 1
	}

	end := offset + visible
	if end > len(res.Visible) {
		end = len(res.Visible)
	}

	for i := offset; i < end; i++ {
		b := res.Visible[i]

		due := b.DueDate
		if days, ok := dateutil.DaysUntilDate(b.DueDate, today()); ok {
			due = cli.FormatRelativeDays(days)
		}
		repeat := string(b.Recurrence)
		if b.Recurrence == model.RecurNone {
			repeat = "-"
		}

		line := fmt.Sprintf("%-*s %10s  %-12s %-8s ",
			nameW, truncStr(b.Name, nameW),
			cli.FormatAmount(b.Amount),
			truncStr(due, 12),
			repeat)

		if i == a.bills.cursor {
			body.WriteString(selectedStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString(cli.RenderStatus(view.Classify(b, today())))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d bill(s) · unpaid %s",
		res.Count, cli.FormatAmount(res.UnpaidTotal))))

	title := "Bills"
	if a.bills.filter != view.FilterAll {
		title = fmt.Sprintf("Bills [%s]", a.bills.filter)
	}

	return components.ContentCard(title, body.String(), cw)
}
