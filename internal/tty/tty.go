// Package tty detaches the supervisor from its controlling terminal so the
// child can claim it.
package tty

import (
	"log/slog"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/kahiteam/pidone/internal/signals"
)

// Controller abstracts the terminal operations on standard input.
type Controller interface {
	// Detach gives up the controlling terminal (TIOCNOTTY).
	Detach() error
	// SessionLeader reports whether the caller leads its session.
	SessionLeader() bool
	// IsTerminal reports whether standard input is a terminal.
	IsTerminal() bool
}

// Stdin returns the Controller for the process's standard input.
func Stdin() Controller { return stdinController{} }

type stdinController struct{}

func (stdinController) Detach() error {
	return unix.IoctlSetInt(unix.Stdin, unix.TIOCNOTTY, 0)
}

func (stdinController) SessionLeader() bool {
	sid, err := unix.Getsid(0)
	return err == nil && sid == unix.Getpid()
}

func (stdinController) IsTerminal() bool {
	return term.IsTerminal(unix.Stdin)
}

// Handoff describes the outcome of Detach.
type Handoff struct {
	Detached      bool // TIOCNOTTY succeeded
	SessionLeader bool // the supervisor led its session when it detached
	// ClaimTerminal is set when the child should make standard input its
	// controlling terminal after it starts a new session.
	ClaimTerminal bool
}

// Detach releases the controlling terminal. A session leader that gives
// up its terminal makes the kernel send SIGHUP and SIGCONT to its
// foreground group, so both are armed in ignores to be swallowed once.
// Failure is not fatal: it is logged at debug level and the child simply
// does not receive a controlling terminal.
func Detach(c Controller, ignores *signals.OneShot, logger *slog.Logger) Handoff {
	if err := c.Detach(); err != nil {
		logger.Debug("unable to detach from controlling tty", "error", err)
		return Handoff{}
	}

	h := Handoff{Detached: true}
	if c.SessionLeader() {
		h.SessionLeader = true
		logger.Debug("detached from controlling tty, ignoring the first SIGHUP and SIGCONT")
		ignores.Arm(syscall.SIGHUP)
		ignores.Arm(syscall.SIGCONT)
	} else {
		logger.Debug("detached from controlling tty, but was not session leader")
	}

	h.ClaimTerminal = h.SessionLeader && c.IsTerminal()
	if !h.ClaimTerminal {
		logger.Debug("child will not claim a controlling tty")
	}
	return h
}
