// Package signals holds the signal translation table and the signal
// bookkeeping used by the dispatch loop.
package signals

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// MaxSignal is the highest signal number the translation table accepts.
// Numbers above it are real-time signals and always pass through.
const MaxSignal = 31

// Number is a signal number validated to lie in [1, MaxSignal].
type Number int

// NewNumber validates n and returns it as a Number.
func NewNumber(n int) (Number, error) {
	if n < 1 || n > MaxSignal {
		return 0, fmt.Errorf("signal %d out of range (must be 1-%d)", n, MaxSignal)
	}
	return Number(n), nil
}

// FromSignal converts sig to a Number. ok is false for signals outside
// the table range.
func FromSignal(sig syscall.Signal) (n Number, ok bool) {
	if sig < 1 || sig > MaxSignal {
		return 0, false
	}
	return Number(sig), true
}

// Signal returns n as a syscall.Signal.
func (n Number) Signal() syscall.Signal { return syscall.Signal(n) }

func (n Number) String() string { return Name(n.Signal()) }

// Name returns the conventional name of sig ("SIGTERM"), falling back to
// "signal N" for numbers the platform does not name.
func Name(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return fmt.Sprintf("signal %d", int(sig))
}

// JobControl lists the terminal job-control stop signals.
var JobControl = []Number{
	Number(syscall.SIGTSTP),
	Number(syscall.SIGTTOU),
	Number(syscall.SIGTTIN),
}

// IsJobControl reports whether sig is one of the job-control stop signals.
func IsJobControl(sig syscall.Signal) bool {
	for _, n := range JobControl {
		if n.Signal() == sig {
			return true
		}
	}
	return false
}

// excluded signals are never subscribed: KILL and STOP cannot be caught,
// and the Go runtime sends itself URG to preempt goroutines.
var excluded = map[syscall.Signal]bool{
	syscall.SIGKILL: true,
	syscall.SIGSTOP: true,
	syscall.SIGURG:  true,
}

// Catchable returns every signal the supervisor subscribes to.
func Catchable() []syscall.Signal {
	var out []syscall.Signal
	for i := 1; i <= MaxSignal; i++ {
		sig := syscall.Signal(i)
		if excluded[sig] {
			continue
		}
		out = append(out, sig)
	}
	return append(out, realtime()...)
}
