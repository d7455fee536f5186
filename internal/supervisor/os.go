package supervisor

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// OS is the set of process primitives the dispatch loop and reaper use.
type OS interface {
	Kill(pid int, sig syscall.Signal) error
	Wait4(pid int, ws *unix.WaitStatus, options int) (int, error)
	Getpid() int
	Getwd() (string, error)
	Chdir(dir string) error
}

type hostOS struct{}

func (hostOS) Kill(pid int, sig syscall.Signal) error { return unix.Kill(pid, sig) }

func (hostOS) Wait4(pid int, ws *unix.WaitStatus, options int) (int, error) {
	return unix.Wait4(pid, ws, options, nil)
}

func (hostOS) Getpid() int { return unix.Getpid() }

func (hostOS) Getwd() (string, error) { return unix.Getwd() }

func (hostOS) Chdir(dir string) error { return unix.Chdir(dir) }
