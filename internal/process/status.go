package process

import "golang.org/x/sys/unix"

// ExitCode converts a wait status into a shell-style exit code: the exit
// status for a normal exit, 128+N for death by signal N. ok is false for
// statuses that do not report termination.
func ExitCode(ws unix.WaitStatus) (code int, ok bool) {
	switch {
	case ws.Exited():
		return ws.ExitStatus(), true
	case ws.Signaled():
		return 128 + int(ws.Signal()), true
	default:
		return 0, false
	}
}
