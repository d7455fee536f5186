package signals

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
)

// Entry is a configured rewrite for one signal. A zero Target means the
// signal is dropped.
type Entry struct {
	Target syscall.Signal
}

// Drop reports whether the entry swallows the signal.
func (e Entry) Drop() bool { return e.Target == 0 }

// Table maps signals in [1, MaxSignal] to rewrite entries. Signals with no
// entry pass through unchanged. It is filled during configuration and only
// read afterwards.
type Table struct {
	entries map[Number]Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[Number]Entry)}
}

// Set records a rewrite of n to target. A target of 0 drops n.
func (t *Table) Set(n Number, target syscall.Signal) {
	t.entries[n] = Entry{Target: target}
}

// SetDefault records a rewrite only if n has no entry yet.
func (t *Table) SetDefault(n Number, target syscall.Signal) {
	if _, ok := t.entries[n]; !ok {
		t.Set(n, target)
	}
}

// Len returns the number of configured entries.
func (t *Table) Len() int { return len(t.entries) }

// Translate returns the signal to deliver for sig. ok is false when the
// signal is dropped. Out-of-range signals always pass through.
func (t *Table) Translate(sig syscall.Signal) (out syscall.Signal, ok bool) {
	n, inRange := FromSignal(sig)
	if !inRange {
		return sig, true
	}
	e, found := t.entries[n]
	if !found {
		return sig, true
	}
	if e.Drop() {
		return 0, false
	}
	return e.Target, true
}

// Spec is a parsed rewrite specification "<signum>:<replacement>[:<observer>]".
type Spec struct {
	Signal      Number
	Replacement syscall.Signal // 0 drops the signal
	Observer    string
}

func (s Spec) String() string {
	if s.Observer != "" {
		return fmt.Sprintf("%d:%d:%s", int(s.Signal), int(s.Replacement), s.Observer)
	}
	return fmt.Sprintf("%d:%d", int(s.Signal), int(s.Replacement))
}

// ParseSpec parses a rewrite specification. Signal numbers are one or two
// decimal digits; signum must be in [1, MaxSignal] and the replacement in
// [0, MaxSignal]. An empty observer field is ignored.
func ParseSpec(arg string) (Spec, error) {
	sigField, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return Spec{}, fmt.Errorf("invalid rewrite %q: expected <signum>:<replacement>", arg)
	}
	repField, observer, _ := strings.Cut(rest, ":")

	sig, err := parseSignum(sigField)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid rewrite %q: %w", arg, err)
	}
	n, err := NewNumber(sig)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid rewrite %q: %w", arg, err)
	}

	rep, err := parseSignum(repField)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid rewrite %q: %w", arg, err)
	}
	if rep > MaxSignal {
		return Spec{}, fmt.Errorf("invalid rewrite %q: replacement %d out of range (must be 0-%d)", arg, rep, MaxSignal)
	}

	return Spec{
		Signal:      n,
		Replacement: syscall.Signal(rep),
		Observer:    observer,
	}, nil
}

func parseSignum(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 || strings.Trim(s, "0123456789") != "" {
		return 0, fmt.Errorf("signal number %q must be 1 or 2 digits", s)
	}
	return strconv.Atoi(s)
}

// OneShot tracks signals that must be swallowed the first time they are
// seen. A flag is consumed on first observation and never re-armed.
type OneShot struct {
	armed map[syscall.Signal]bool
}

// NewOneShot returns an empty set.
func NewOneShot() *OneShot {
	return &OneShot{armed: make(map[syscall.Signal]bool)}
}

// Arm marks sig to be swallowed once.
func (o *OneShot) Arm(sig syscall.Signal) { o.armed[sig] = true }

// Consume clears the flag for sig and reports whether it was armed.
func (o *OneShot) Consume(sig syscall.Signal) bool {
	if !o.armed[sig] {
		return false
	}
	delete(o.armed, sig)
	return true
}
