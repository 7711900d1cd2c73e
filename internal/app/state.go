package app

import (
	"github.com/sunydepalpur/reaper/internal/view"
	"github.com/sunydepalpur/reaper/pkg/model"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearching
	ModeConfirmingKill
)

func (m Mode) String() string {
	switch m {
	case ModeSearching:
		return "SEARCH"
	case ModeConfirmingKill:
		return "CONFIRM"
	}
	return "BROWSE"
}

// MaxFilterLen bounds the filter, in runes.
const MaxFilterLen = 64

// statusTTL is how many key events a status message survives.
const statusTTL = 5

// Status is a transient one-line message.
type Status struct {
	Text  string
	Error bool
	ttl   int
}

// Visible reports whether there is a message to draw.
func (s Status) Visible() bool { return s.Text != "" && s.ttl > 0 }

// State is the whole application state. It is owned by the event loop and
// only changed through Controller.
type State struct {
	// Listeners is the last successful scan.
	Listeners []model.Listener

	SortKey view.SortKey
	// Filter is the committed filter; FilterBuffer is edited while searching.
	Filter       string
	FilterBuffer string

	// View is derived from Listeners, the active filter and SortKey.
	View []model.Listener
	// Selected indexes View, or is -1 when View is empty.
	Selected int
	// PageSize is how many rows PgUp/PgDown move.
	PageSize int

	Mode Mode
	// PendingKill is the pid awaiting confirmation, 0 outside ModeConfirmingKill.
	PendingKill int
	// PendingName and PendingCmdline are shown in the confirmation prompt.
	PendingName    string
	PendingCmdline string

	Status Status
}

func NewState() *State {
	return &State{Selected: -1, PageSize: 10}
}

// ActiveFilter is the filter the view is computed from: the edit buffer while
// searching, the committed filter otherwise.
func (s *State) ActiveFilter() string {
	if s.Mode == ModeSearching {
		return s.FilterBuffer
	}
	return s.Filter
}

// SelectedListener returns the row under the cursor.
func (s *State) SelectedListener() (model.Listener, bool) {
	if s.Selected < 0 || s.Selected >= len(s.View) {
		return model.Listener{}, false
	}
	return s.View[s.Selected], true
}

// recompute rebuilds View and clamps Selected to it.
func (s *State) recompute() {
	s.View = view.Compute(s.Listeners, s.ActiveFilter(), s.SortKey)
	s.clamp()
}

func (s *State) clamp() {
	switch {
	case len(s.View) == 0:
		s.Selected = -1
	case s.Selected < 0:
		s.Selected = 0
	case s.Selected >= len(s.View):
		s.Selected = len(s.View) - 1
	}
}

func (s *State) move(delta int) {
	if len(s.View) == 0 {
		return
	}
	s.Selected += delta
	s.clamp()
}

func (s *State) setStatus(text string, isErr bool) {
	s.Status = Status{Text: text, Error: isErr, ttl: statusTTL}
}

func (s *State) clearStatus() {
	s.Status = Status{}
}

func (s *State) tickStatus() {
	if s.Status.ttl > 0 {
		s.Status.ttl--
	}
	if s.Status.ttl == 0 {
		s.Status = Status{}
	}
}

func (s *State) clearPendingKill() {
	s.PendingKill = 0
	s.PendingName = ""
	s.PendingCmdline = ""
}

func (s *State) hasPID(pid int) bool {
	for _, l := range s.Listeners {
		if l.PID == pid {
			return true
		}
	}
	return false
}
