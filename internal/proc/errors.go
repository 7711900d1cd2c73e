package proc

import (
	"errors"
	"fmt"
)

var (
	ErrProcessGone = errors.New("process already exited")
	ErrPermission  = errors.New("permission denied")
	ErrInvalidPID  = errors.New("invalid pid")
)

// TerminationError reports a termination request that could not be delivered.
type TerminationError struct {
	PID int
	Err error
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("terminate pid %d: %v", e.PID, e.Err)
}

func (e *TerminationError) Unwrap() error { return e.Err }

// Terminator asks a process to exit.
type Terminator interface {
	Terminate(pid int) error
}
