package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sunydepalpur/reaper/internal/app"
	"github.com/sunydepalpur/reaper/internal/output"
	"github.com/sunydepalpur/reaper/internal/view"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle = lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)
	inactiveStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("240"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	modeStyle     = lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("240"))
	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(1, 3).
			Align(lipgloss.Center)
)

// Bounds for text in the confirmation box.
const (
	maxNameWidth    = 40
	maxCmdlineWidth = 60
)

func (m tuiModel) View() string {
	s := m.state
	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("reaper - listening processes"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d of %d sockets", len(s.View), len(s.Listeners))))
	b.WriteString("\n\n")

	// Sort keys
	b.WriteString(dimStyle.Render("Sort: "))
	for i, k := range view.SortKeys {
		style := inactiveStyle
		if k == s.SortKey {
			style = activeStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("[%d] %s", i+1, k)))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	// Filter
	switch {
	case s.Mode == app.ModeSearching:
		b.WriteString(titleStyle.Render(" / ") + m.filterInput.View() + "\n")
	case s.Filter != "":
		b.WriteString(dimStyle.Render(" Filter: "+output.SanitizeLine(s.Filter)+"  (esc to clear)") + "\n")
	default:
		b.WriteString("\n")
	}

	// Table
	if len(s.View) == 0 {
		msg := "No listening sockets"
		if f := s.ActiveFilter(); f != "" {
			msg = fmt.Sprintf("No matches for %q", output.SanitizeLine(f))
		}
		b.WriteString(baseStyle.Render(dimStyle.Render(msg)) + "\n")
	} else {
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	}

	// Status
	if s.Status.Visible() {
		text := m.fit(output.SanitizeLine(s.Status.Text))
		if s.Status.Error {
			b.WriteString(errorStyle.Render("✗ "+text) + "\n")
		} else {
			b.WriteString(infoStyle.Render("✓ "+text) + "\n")
		}
	} else {
		b.WriteString("\n")
	}

	if s.Mode == app.ModeConfirmingKill {
		b.WriteString(m.renderConfirm() + "\n")
	}

	// Help
	b.WriteString(modeStyle.Render(s.Mode.String()) + dimStyle.Render("  "+helpText(s.Mode)) + "\n")

	return b.String()
}

func (m tuiModel) renderConfirm() string {
	s := m.state
	name := runewidth.Truncate(output.SanitizeLine(s.PendingName), maxNameWidth, "…")
	body := fmt.Sprintf("Kill process?\n\n%s (pid %d)", name, s.PendingKill)
	if s.PendingCmdline != "" {
		body += "\n" + dimStyle.Render(runewidth.Truncate(output.SanitizeLine(s.PendingCmdline), maxCmdlineWidth, "…"))
	}
	body += "\n\n[y] Yes  [n] No"
	return confirmStyle.Render(body)
}

func helpText(mode app.Mode) string {
	switch mode {
	case app.ModeSearching:
		return "type to filter • enter: apply • esc: cancel • backspace: delete"
	case app.ModeConfirmingKill:
		return "y/enter: kill • n/esc: cancel"
	}
	return "↑/↓ j/k: move • enter: kill • /: filter • s, 1-6: sort • r: refresh • q: quit"
}

// fit truncates a line to the terminal width once it is known.
func (m tuiModel) fit(s string) string {
	if m.width <= 4 {
		return s
	}
	return runewidth.Truncate(s, m.width-4, "…")
}
