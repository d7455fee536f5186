package signals

import "syscall"

// Linux real-time signals. 32 and 33 are reserved by the C library.
const (
	sigRTMin = 34
	sigRTMax = 64
)

func realtime() []syscall.Signal {
	out := make([]syscall.Signal, 0, sigRTMax-sigRTMin+1)
	for i := sigRTMin; i <= sigRTMax; i++ {
		out = append(out, syscall.Signal(i))
	}
	return out
}
