package config

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/kahiteam/pidone/internal/signals"
)

// lookPath resolves observer executables. Tests replace it.
var lookPath = exec.LookPath

// UsageError reports a command line that names no command to run.
type UsageError struct {
	Program string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %s [option] program [args]\nTry %s --help for full usage.", e.Program, e.Program)
}

// Build resolves the command-line options, the optional config file and
// the environment into a Config. Later sources win: file, then flags,
// then environment. file may be nil.
func Build(program string, opts Options, file *File) (*Config, error) {
	cfg := &Config{
		UseSetsid: true,
		Rewrites:  signals.NewTable(),
		Observers: make(map[signals.Number]string),
	}

	var errs *multierror.Error
	var specs []signals.Spec

	if file != nil {
		cfg.UseSetsid = !file.SingleChild
		cfg.Debug = file.Verbose
		cfg.Subreaper = file.Subreaper
		cfg.MetricsAddr = file.MetricsAddr
		cfg.LogFormat = file.LogFormat
		for _, raw := range file.Rewrite {
			spec, err := signals.ParseSpec(raw)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("rewrite: %w", err))
				continue
			}
			specs = append(specs, spec)
		}
	}

	if opts.SingleChild {
		cfg.UseSetsid = false
	}
	if opts.Verbose {
		cfg.Debug = true
	}
	if opts.Subreaper {
		cfg.Subreaper = true
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	specs = append(specs, opts.Rewrites.Specs()...)

	if errs != nil {
		return nil, finish(errs)
	}
	if len(opts.Args) == 0 {
		return nil, &UsageError{Program: program}
	}
	cfg.Command = opts.Args

	applyEnv(cfg)

	for _, spec := range specs {
		cfg.Rewrites.Set(spec.Signal, spec.Replacement)
		if spec.Observer == "" {
			continue
		}
		path, err := resolveObserver(spec.Observer)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: observer not found or not executable", spec.Observer))
			continue
		}
		cfg.Observers[spec.Signal] = path
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return nil, finish(errs)
	}
	return cfg, nil
}

// resolveObserver finds the observer executable. The result is absolute
// because the supervisor changes to / after the child starts.
func resolveObserver(name string) (string, error) {
	path, err := lookPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}
