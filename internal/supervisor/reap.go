package supervisor

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/kahiteam/pidone/internal/process"
)

// reap drains every exited descendant without blocking. When the tracked
// child is among them the remaining processes are sent SIGTERM and done
// is true; no further reaping happens after that.
func (s *Supervisor) reap() (code int, done bool) {
	child := s.ChildPID()

	for {
		var ws unix.WaitStatus
		pid, err := s.os.Wait4(-1, &ws, unix.WNOHANG)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || pid <= 0 {
			return 0, false
		}

		exit, ok := process.ExitCode(ws)
		if !ok {
			// WNOHANG without WUNTRACED only reports terminations.
			s.logger.Debug("unexpected wait status, stopping reap", "pid", pid, "status", uint32(ws))
			return 0, false
		}

		tracked := pid == child
		s.metrics.IncReaped(tracked)
		if !tracked {
			s.logger.Debug("reaped descendant", "pid", pid, "exit_code", exit)
			continue
		}

		s.logger.Debug("child exited, forwarding SIGTERM to remaining processes", "pid", pid, "exit_code", exit)
		s.metrics.SetChildExitCode(exit)
		s.forward(syscall.SIGTERM, true)
		return exit, true
	}
}
