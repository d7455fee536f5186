package supervisor

import (
	"os"
	"strings"
	"syscall"

	"github.com/kahiteam/pidone/internal/process"
	"github.com/kahiteam/pidone/internal/signals"
	"github.com/kahiteam/pidone/internal/tty"
)

// Run subscribes to signals, starts the child and dispatches signals until
// the child exits. It returns the exit code pidone should terminate with.
// A non-nil error means the child never started.
func (s *Supervisor) Run() (int, error) {
	queue := NewSignalQueue()
	defer queue.Stop()

	if err := s.Start(); err != nil {
		return 0, err
	}
	return s.Loop(queue.C, queue.Child), nil
}

// Start detaches from the terminal in process-group mode, spawns the
// child and records its pid. Signals must already be subscribed.
func (s *Supervisor) Start() error {
	var handoff tty.Handoff
	if s.config.UseSetsid {
		handoff = tty.Detach(s.tty, s.ignores, s.logger)
		s.logger.Debug("terminal handoff", "detached", handoff.Detached, "claim_terminal", handoff.ClaimTerminal)
	}

	if s.config.Subreaper {
		if err := process.SetSubreaper(); err != nil {
			s.logger.Warn("unable to become child subreaper", "error", err)
		}
	}

	cmd := s.config.Command
	pid, err := s.spawner.Spawn(process.SpawnConfig{
		Command: cmd[0],
		Args:    cmd[1:],
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Setsid:  s.config.UseSetsid,
		Setctty: handoff.ClaimTerminal,
	})
	if err != nil {
		return err
	}

	s.child.Store(int64(pid))
	s.metrics.SetChildPID(pid)
	s.logger.Debug("child spawned", "pid", pid, "command", strings.Join(cmd, " "))

	if wd, err := s.os.Getwd(); err != nil {
		s.logger.Debug("unable to read working directory", "error", err)
	} else {
		s.workDir = wd
	}
	if err := s.os.Chdir("/"); err != nil {
		s.logger.Debug("unable to chdir into /", "error", err)
	}
	return nil
}

// Loop dispatches signals from sigs and child until the tracked child has
// been reaped, then returns its exit code. Signals already queued on sigs
// are handled before a pending SIGCHLD, so signals sent before the child
// exited still reach it.
func (s *Supervisor) Loop(sigs, child <-chan os.Signal) int {
	for {
		var received os.Signal
		select {
		case received = <-sigs:
		default:
			select {
			case received = <-sigs:
			case received = <-child:
			}
		}
		sig, ok := received.(syscall.Signal)
		if !ok {
			continue
		}
		if code, done := s.Dispatch(sig); done {
			return code
		}
	}
}

// Dispatch handles one received signal. done is true once the tracked
// child has exited, with code set to its exit code.
func (s *Supervisor) Dispatch(sig syscall.Signal) (code int, done bool) {
	s.metrics.IncReceived(sig)
	s.logger.Debug("received signal", "signal", signals.Name(sig))

	if s.ignores.Consume(sig) {
		s.logger.Debug("ignoring tty hang-up signal", "signal", signals.Name(sig))
		s.metrics.IncIgnored(sig)
		return 0, false
	}

	if sig == syscall.SIGCHLD {
		return s.reap()
	}

	s.forward(sig, true)

	if signals.IsJobControl(sig) {
		s.logger.Debug("suspending self due to job-control signal", "signal", signals.Name(sig))
		_ = s.os.Kill(s.os.Getpid(), syscall.SIGSTOP)
		s.logger.Debug("woke up")
	}
	return 0, false
}

// forward translates sig and delivers it to the child, or to the child's
// process group in process-group mode. Delivery errors are ignored: the
// child's exit status is the authoritative outcome. When observe is set
// the signal's observer runs first.
func (s *Supervisor) forward(sig syscall.Signal, observe bool) {
	out, ok := s.config.Rewrites.Translate(sig)

	if observe {
		s.runObserver(sig, out)
	}

	if !ok {
		s.logger.Debug("not forwarding dropped signal", "signal", signals.Name(sig))
		s.metrics.IncDropped(sig)
		return
	}
	if out != sig {
		s.logger.Debug("translating signal", "from", signals.Name(sig), "to", signals.Name(out))
	}

	target := s.ChildPID()
	if target <= 0 {
		return
	}
	if s.config.UseSetsid {
		target = -target
	}

	if err := s.os.Kill(target, out); err != nil {
		s.logger.Debug("unable to forward signal", "signal", signals.Name(out), "pid", target, "error", err)
		return
	}
	s.metrics.IncForwarded(out)
	s.logger.Debug("forwarded signal", "signal", signals.Name(out), "pid", target)
}

// runObserver starts the observer configured for sig, if any. replacement
// is 0 when the signal is dropped.
func (s *Supervisor) runObserver(sig, replacement syscall.Signal) {
	n, ok := signals.FromSignal(sig)
	if !ok {
		return
	}
	path, ok := s.config.Observers[n]
	if !ok {
		return
	}

	pid, err := process.StartObserver(s.spawner, path, s.workDir, sig, replacement)
	if err != nil {
		s.logger.Error("unable to start observer", "observer", path, "signal", signals.Name(sig), "error", err)
		s.metrics.IncObserverStart(sig, false)
		return
	}
	s.metrics.IncObserverStart(sig, true)
	s.logger.Debug("observer started", "observer", path, "signal", signals.Name(sig), "pid", pid)
}
