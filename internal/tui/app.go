// Package tui provides the interactive Bubble Tea dashboard for autobill.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ARK-Community/AutoBillTracker/internal/cli"
	"github.com/ARK-Community/AutoBillTracker/internal/config"
	"github.com/ARK-Community/AutoBillTracker/internal/forms"
	"github.com/ARK-Community/AutoBillTracker/internal/ledger"
	"github.com/ARK-Community/AutoBillTracker/internal/store"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/components"
	"github.com/ARK-Community/AutoBillTracker/internal/tui/theme"
	"github.com/ARK-Community/AutoBillTracker/internal/view"
)

const (
	tabBills = iota
	tabUpcoming
	tabSettings
)

const (
	minTerminalWidth = 60
	minContentHeight = 5
)

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	ledger  *ledger.Ledger
	backend store.Backend

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	statusMsg string

	// Bills tab state
	bills billsState

	// Add/edit form (huh), nil when inactive. formVals is shared by
	// pointer so the form's bindings survive model copies.
	billForm   *huh.Form
	formVals   *forms.BillValues
	formEditID string // empty while adding

	// Delete confirmation, empty when inactive
	confirmID   string
	confirmName string
}

// NewApp creates the dashboard model over an already loaded ledger.
func NewApp(cfg config.Config, l *ledger.Ledger, be store.Backend) App {
	filter, _ := view.ParseFilter(cfg.General.DefaultFilter)

	return App{
		cfg:     cfg,
		ledger:  l,
		backend: be,
		bills:   newBillsState(filter),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.billForm != nil {
			a.billForm = a.billForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Form intercepts all keys while active
		if a.billForm != nil {
			return a.updateBillForm(msg)
		}

		// Delete confirmation intercepts all keys
		if a.confirmID != "" {
			return a.updateConfirmDelete(key)
		}

		// Search input intercepts all keys while active
		if a.activeTab == tabBills && a.bills.searching {
			return a.updateBillsSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Bills tab keybindings
		if a.activeTab == tabBills {
			if m, cmd, handled := a.updateBillsKeys(key); handled {
				return m, cmd
			}
		}

		// Tab navigation
		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.billForm != nil {
		return a.updateBillForm(msg)
	}
	if a.activeTab == tabBills && a.bills.searching {
		var cmd tea.Cmd
		a.bills.searchInput, cmd = a.bills.searchInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

// persist writes the ledger back through the backend, keeping the in-memory
// state authoritative when the save fails.
func (a *App) persist() {
	if err := a.backend.Save(a.ledger.All()); err != nil {
		a.statusMsg = "save failed, changes may be lost"
		return
	}
	a.statusMsg = ""
}

func today() time.Time {
	return time.Now()
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  autobill needs at least %d columns.\n",
			a.width, minTerminalWidth,
		)
	}

	if a.billForm != nil {
		return a.billForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewMain() string {
	w := a.width
	h := a.height

	header := components.RenderTabBar(a.activeTab) + "\n"

	right := a.statusRight()
	left := ""
	if a.confirmID != "" {
		left = fmt.Sprintf(" Delete %q? [y]es [n]o", a.confirmName)
	} else if a.statusMsg != "" {
		left = " " + a.statusMsg
	}
	statusBar := components.RenderStatusBar(w, left, right)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabBills:
		content = a.renderBillsTab(w, contentH)
	case tabUpcoming:
		content = a.renderUpcomingTab(w)
	case tabSettings:
		content = a.renderSettingsTab(w)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// statusRight summarizes the ledger for the status bar.
func (a App) statusRight() string {
	res := view.Compute(a.ledger.All(), "", view.FilterUnpaid, today())
	return fmt.Sprintf("%d unpaid · %s ", res.Count, cli.FormatAmount(res.UnpaidTotal))
}

func (a App) viewHelp() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"b u s", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move cursor"},
		{"g G", "First / Last bill"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Bills"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add bill"},
		{"e", "Edit bill"},
		{"p/space", "Toggle paid"},
		{"d", "Delete bill"},
		{"/", "Search"},
		{"f", "Cycle status filter"},
		{"esc", "Clear search"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
