//go:build !linux

package signals

import "syscall"

func realtime() []syscall.Signal { return nil }
