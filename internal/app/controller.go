// Package app holds the interaction controller: a small state machine that
// turns key events into changes of State, scans and termination requests.
package app

import (
	"errors"
	"fmt"
	"log"
	"unicode"
	"unicode/utf8"

	"github.com/sunydepalpur/reaper/internal/proc"
	"github.com/sunydepalpur/reaper/internal/view"
	"github.com/sunydepalpur/reaper/pkg/model"
)

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyPgUp
	KeyPgDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEsc
	KeyBackspace
)

// Key is a terminal-independent key event. Rune is set for KeyRune only.
type Key struct {
	Code KeyCode
	Rune rune
}

// Rune is shorthand for a printable key.
func Rune(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Result tells the event loop what to do after a key was handled.
type Result struct {
	Quit bool
	// Terminated is set when a termination request was delivered; the
	// caller should refresh once the process had time to exit.
	Terminated bool
}

type Controller struct {
	source      proc.Source
	terminator  proc.Terminator
	commandLine func(pid int) (string, error)
}

type Option func(*Controller)

// WithCommandLine sets the lookup used to show the full command line of a
// process in the confirmation prompt.
func WithCommandLine(fn func(pid int) (string, error)) Option {
	return func(c *Controller) { c.commandLine = fn }
}

func NewController(source proc.Source, terminator proc.Terminator, opts ...Option) *Controller {
	c := &Controller{source: source, terminator: terminator}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh replaces the listener set with a fresh scan. On failure the previous
// set is kept and an error status is shown.
func (c *Controller) Refresh(s *State) error {
	res, err := c.source.Scan()
	if err != nil {
		log.Printf("refresh failed: %v", err)
		s.setStatus("Refresh failed: "+err.Error(), true)
		return err
	}
	log.Printf("refresh: %d listeners, %d lines skipped", len(res.Listeners), res.Skipped)

	s.Listeners = res.Listeners
	if s.Status.Error {
		s.clearStatus()
	}
	if s.PendingKill != 0 && !s.hasPID(s.PendingKill) {
		s.setStatus(fmt.Sprintf("%s (pid %d) is gone", s.PendingName, s.PendingKill), false)
		s.clearPendingKill()
		if s.Mode == ModeConfirmingKill {
			s.Mode = ModeBrowse
		}
	}
	s.recompute()
	return nil
}

// Handle applies one key event.
func (c *Controller) Handle(s *State, k Key) Result {
	s.tickStatus()

	switch s.Mode {
	case ModeSearching:
		c.handleSearching(s, k)
		return Result{}
	case ModeConfirmingKill:
		return c.handleConfirm(s, k)
	}
	return c.handleBrowse(s, k)
}

func (c *Controller) handleBrowse(s *State, k Key) Result {
	switch k.Code {
	case KeyUp:
		s.move(-1)
	case KeyDown:
		s.move(1)
	case KeyPgUp:
		s.move(-s.PageSize)
	case KeyPgDown:
		s.move(s.PageSize)
	case KeyHome:
		s.move(-len(s.View))
	case KeyEnd:
		s.move(len(s.View))
	case KeyEnter:
		c.armKill(s)
	case KeyEsc:
		if s.Filter != "" {
			s.Filter = ""
			s.recompute()
		}
	case KeyRune:
		return c.handleBrowseRune(s, k.Rune)
	}
	return Result{}
}

func (c *Controller) handleBrowseRune(s *State, r rune) Result {
	switch r {
	case 'q':
		return Result{Quit: true}
	case 'k':
		s.move(-1)
	case 'j':
		s.move(1)
	case 'g':
		s.move(-len(s.View))
	case 'G':
		s.move(len(s.View))
	case '/':
		s.Mode = ModeSearching
		s.FilterBuffer = ""
		s.recompute()
	case 's':
		s.SortKey = s.SortKey.Next()
		s.recompute()
	case 'r':
		if err := c.Refresh(s); err == nil {
			s.setStatus(fmt.Sprintf("Refreshed: %d listening sockets", len(s.Listeners)), false)
		}
	default:
		if key, ok := view.SortKeyForShortcut(r); ok {
			s.SortKey = key
			s.recompute()
		}
	}
	return Result{}
}

func (c *Controller) handleSearching(s *State, k Key) {
	switch k.Code {
	case KeyRune:
		if !unicode.IsPrint(k.Rune) || utf8.RuneCountInString(s.FilterBuffer) >= MaxFilterLen {
			return
		}
		s.FilterBuffer += string(k.Rune)
		s.recompute()
	case KeyBackspace:
		if r := []rune(s.FilterBuffer); len(r) > 0 {
			s.FilterBuffer = string(r[:len(r)-1])
			s.recompute()
		}
	case KeyEsc:
		s.Mode = ModeBrowse
		s.FilterBuffer = ""
		s.recompute()
	case KeyEnter:
		s.Filter = s.FilterBuffer
		s.FilterBuffer = ""
		s.Mode = ModeBrowse
		s.recompute()
	}
}

// armKill enters the confirmation step; it is the only way into
// ModeConfirmingKill and therefore the only path to a termination request.
func (c *Controller) armKill(s *State) {
	l, ok := s.SelectedListener()
	if !ok {
		return
	}
	s.Mode = ModeConfirmingKill
	s.PendingKill = l.PID
	s.PendingName = l.Process
	s.PendingCmdline = ""
	if c.commandLine != nil {
		if cmdline, err := c.commandLine(l.PID); err == nil {
			s.PendingCmdline = cmdline
		}
	}
}

func (c *Controller) handleConfirm(s *State, k Key) Result {
	confirm := k.Code == KeyEnter || (k.Code == KeyRune && (k.Rune == 'y' || k.Rune == 'Y'))
	cancel := k.Code == KeyEsc || (k.Code == KeyRune && (k.Rune == 'n' || k.Rune == 'N'))

	switch {
	case confirm:
		res := c.terminate(s, s.PendingKill, s.PendingName)
		s.clearPendingKill()
		s.Mode = ModeBrowse
		return res
	case cancel:
		s.clearPendingKill()
		s.Mode = ModeBrowse
	}
	return Result{}
}

func (c *Controller) terminate(s *State, pid int, name string) Result {
	err := c.terminator.Terminate(pid)
	if err != nil {
		log.Printf("terminate pid %d (%s): %v", pid, name, err)
		s.setStatus(fmt.Sprintf("Failed to kill %s (pid %d): %s", name, pid, describeTermination(err)), true)
		return Result{}
	}
	log.Printf("terminate pid %d (%s): signal sent", pid, name)
	s.setStatus(fmt.Sprintf("Sent termination signal to %s (pid %d)", name, pid), false)

	s.Listeners = withoutPID(s.Listeners, pid)
	s.recompute()
	return Result{Terminated: true}
}

func describeTermination(err error) string {
	switch {
	case errors.Is(err, proc.ErrProcessGone):
		return "process already exited"
	case errors.Is(err, proc.ErrPermission):
		return "permission denied, try running as root"
	}
	var termErr *proc.TerminationError
	if errors.As(err, &termErr) {
		return termErr.Err.Error()
	}
	return err.Error()
}

// withoutPID returns a new slice; the scanned set itself is never modified.
func withoutPID(listeners []model.Listener, pid int) []model.Listener {
	out := make([]model.Listener, 0, len(listeners))
	for _, l := range listeners {
		if l.PID != pid {
			out = append(out, l)
		}
	}
	return out
}
