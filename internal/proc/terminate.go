//go:build linux || darwin

package proc

import (
	"errors"

	"golang.org/x/sys/unix"
)

// SignalTerminator delivers a signal, SIGTERM unless Signal is set.
type SignalTerminator struct {
	Signal unix.Signal
}

func (t SignalTerminator) Terminate(pid int) error {
	// kill(2) treats 0 and negative pids as process groups
	if pid <= 0 {
		return &TerminationError{PID: pid, Err: ErrInvalidPID}
	}
	sig := t.Signal
	if sig == 0 {
		sig = unix.SIGTERM
	}
	err := unix.Kill(pid, sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH):
		return &TerminationError{PID: pid, Err: ErrProcessGone}
	case errors.Is(err, unix.EPERM):
		return &TerminationError{PID: pid, Err: ErrPermission}
	}
	return &TerminationError{PID: pid, Err: err}
}
