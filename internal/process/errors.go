package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
)

// StartError reports that the target command could not be started: it
// was not found, not executable, or the image replacement failed.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string { return fmt.Sprintf("%s: %v", e.Command, e.Err) }

func (e *StartError) Unwrap() error { return e.Err }

// SetupError reports a failure to create the child process or its session.
type SetupError struct {
	Op  string // "fork", "setsid" or "spawn"
	Err error
}

func (e *SetupError) Error() string { return fmt.Sprintf("unable to %s: %v", e.Op, e.Err) }

func (e *SetupError) Unwrap() error { return e.Err }

// classify maps an error from exec.Cmd.Start to a StartError or SetupError.
func classify(command string, setsid bool, err error) error {
	var ee *exec.Error
	if errors.As(err, &ee) {
		return &StartError{Command: command, Err: ee.Err}
	}

	var pe *fs.PathError
	if errors.As(err, &pe) && pe.Op == "fork/exec" {
		switch {
		case errors.Is(pe.Err, syscall.EAGAIN), errors.Is(pe.Err, syscall.ENOMEM):
			return &SetupError{Op: "fork", Err: pe.Err}
		case setsid && errors.Is(pe.Err, syscall.EPERM):
			return &SetupError{Op: "setsid", Err: pe.Err}
		}
		return &StartError{Command: command, Err: pe.Err}
	}

	return &SetupError{Op: "spawn", Err: err}
}
