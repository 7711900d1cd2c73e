package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sunydepalpur/reaper/internal/app"
	"github.com/sunydepalpur/reaper/internal/output"
	"github.com/sunydepalpur/reaper/internal/view"
)

// settleDelay gives a signalled process time to close its sockets before the
// list is scanned again.
const settleDelay = 500 * time.Millisecond

// chromeHeight is the number of lines drawn around the table.
const chromeHeight = 12

// refreshMsg asks for a rescan after a termination.
type refreshMsg struct{}

type tuiModel struct {
	ctrl        *app.Controller
	state       *app.State
	table       table.Model
	filterInput textinput.Model
	settle      time.Duration
	width       int
	height      int
}

var columns = []struct {
	title    string
	width    int
	key      view.SortKey
	sortable bool
}{
	{"PID", 8, view.SortByPID, true},
	{"Process", 18, view.SortByName, true},
	{"User", 12, 0, false},
	{"Proto", 6, view.SortByProtocol, true},
	{"Address", 28, view.SortByAddress, true},
	{"Port", 7, view.SortByPort, true},
	{"State", 12, view.SortByState, true},
}

func newModel(ctrl *app.Controller, state *app.State) tuiModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Filter..."
	ti.CharLimit = app.MaxFilterLen
	ti.Width = 30

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(state.PageSize),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)

	m := tuiModel{
		ctrl:        ctrl,
		state:       state,
		table:       t,
		filterInput: ti,
		settle:      settleDelay,
	}
	m.sync()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, k := range translateKey(msg) {
			res := m.ctrl.Handle(m.state, k)
			if res.Quit {
				return m, tea.Quit
			}
			if res.Terminated {
				cmd = tea.Tick(m.settle, func(time.Time) tea.Msg {
					return refreshMsg{}
				})
			}
		}
	case refreshMsg:
		// failures are reported through the status line
		_ = m.ctrl.Refresh(m.state)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := m.height - chromeHeight
		if h < 3 {
			h = 3
		}
		m.state.PageSize = h
	}

	m.sync()
	return m, cmd
}

// sync copies the controller state into the table and filter widgets.
func (m *tuiModel) sync() {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		title := c.title
		if c.sortable && c.key == m.state.SortKey {
			title += " ↑"
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}

	rows := make([]table.Row, 0, len(m.state.View))
	for _, l := range m.state.View {
		rows = append(rows, table.Row{
			strconv.Itoa(l.PID),
			output.SanitizeLine(l.Process),
			output.SanitizeLine(l.User),
			l.Protocol.String(),
			output.SanitizeLine(l.Address),
			strconv.Itoa(l.Port),
			l.State.String(),
		})
	}

	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetHeight(m.tableHeight())
	if m.state.Selected >= 0 {
		m.table.SetCursor(m.state.Selected)
	} else {
		m.table.SetCursor(0)
	}

	if m.state.Mode == app.ModeSearching {
		m.filterInput.SetValue(m.state.FilterBuffer)
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
	} else {
		m.filterInput.Blur()
	}
}

// tableHeight leaves room for the confirmation box while it is open.
func (m tuiModel) tableHeight() int {
	h := m.state.PageSize
	if m.state.Mode == app.ModeConfirmingKill {
		h -= lipgloss.Height(m.renderConfirm())
	}
	if h < 3 {
		h = 3
	}
	return h
}

// Run blocks until the user quits. The state must already hold a scan.
func Run(ctrl *app.Controller, state *app.State) error {
	p := tea.NewProgram(newModel(ctrl, state), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
