// Package config resolves pidone's command line, optional config file and
// environment into one immutable configuration.
package config

import (
	"github.com/kahiteam/pidone/internal/signals"
)

// Config is the resolved supervisor configuration. It is built once at
// startup and not modified afterwards.
type Config struct {
	UseSetsid   bool     // signal the child's process group and hand it the terminal
	Debug       bool     // debug logging
	Subreaper   bool     // become a child subreaper (Linux)
	MetricsAddr string   // listen address for /metrics; empty disables it
	LogFormat   string   // "text" or "json"
	Command     []string // target command and its arguments

	Rewrites  *signals.Table
	Observers map[signals.Number]string // resolved observer executables
}

// Options holds the raw command-line inputs.
type Options struct {
	SingleChild bool
	Verbose     bool
	Version     bool
	Subreaper   bool
	ConfigPath  string
	MetricsAddr string
	LogFormat   string
	Rewrites    RewriteFlag
	Args        []string
}

// File is the optional TOML config file.
type File struct {
	SingleChild bool     `toml:"single_child"`
	Verbose     bool     `toml:"verbose"`
	Subreaper   bool     `toml:"subreaper"`
	MetricsAddr string   `toml:"metrics_addr"`
	LogFormat   string   `toml:"log_format"`
	Rewrite     []string `toml:"rewrite"`
}
