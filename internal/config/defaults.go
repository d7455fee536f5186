package config

import (
	"syscall"

	"github.com/kahiteam/pidone/internal/signals"
)

// DefaultLogFormat is used when neither the file nor the flags set one.
const DefaultLogFormat = "text"

// ApplyDefaults fills in values that depend on the resolved mode.
//
// In process-group mode every job-control stop signal without an explicit
// entry is rewritten to SIGSTOP, so the forwarded signal suspends the
// group regardless of how the child handles the original.
func ApplyDefaults(cfg *Config) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.UseSetsid {
		for _, n := range signals.JobControl {
			cfg.Rewrites.SetDefault(n, syscall.SIGSTOP)
		}
	}
}
