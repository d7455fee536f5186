package process

import "golang.org/x/sys/unix"

// SetSubreaper marks the calling process as a child subreaper, so orphaned
// descendants are reparented to it instead of to PID 1.
func SetSubreaper() error {
	return unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0)
}
