package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kahiteam/pidone/internal/config"
	"github.com/kahiteam/pidone/internal/process"
	"github.com/kahiteam/pidone/internal/version"
)

// exitCode carries the supervised child's exit status out of Execute.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

const longHelp = `pidone is a minimal init system for containers. It runs a single
command as its child, proxies every signal it receives to the child's
process group and reaps all descendants.

Signal rewrites take the form <signum>:<replacement>[:<observer>]. A
replacement of 0 drops the signal. The observer, if given, is started with
PIDONE_SIGNUM and PIDONE_REPLACEMENT_SIGNUM set each time the signal
arrives.

In process-group mode SIGTSTP, SIGTTOU and SIGTTIN are rewritten to
SIGSTOP unless a rewrite for them is given.

Environment:
  PIDONE_DEBUG=1   enable debug logging (DUMB_INIT_DEBUG is also honored)
  PIDONE_SETSID=0  run in single-child mode (DUMB_INIT_SETSID is also honored)
  PIDONE_CONFIG    path to a TOML config file`

func newRootCmd() *cobra.Command {
	opts := &config.Options{}

	cmd := &cobra.Command{
		Use:           version.Name + " [flags] program [args]",
		Short:         "pidone -- minimal PID 1 process supervisor",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				return printVersion(cmd.OutOrStdout())
			}
			opts.Args = args
			return runSupervisor(cmd.ErrOrStderr(), *opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	// Everything after the first non-flag argument belongs to the command.
	f.SetInterspersed(false)
	f.BoolVarP(&opts.SingleChild, "single-child", "c", false,
		"run in single-child mode: signal only the child and do not start a session")
	f.VarP(&opts.Rewrites, "rewrite", "r",
		"rewrite received signal s to r before proxying; repeatable")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debugging information to stderr")
	f.BoolVarP(&opts.Version, "version", "V", false, "print version and exit")
	f.StringVar(&opts.ConfigPath, "config", "", "path to a TOML config file")
	f.BoolVar(&opts.Subreaper, "subreaper", false, "become a child subreaper (Linux)")
	f.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve status and Prometheus metrics on this address")
	f.StringVar(&opts.LogFormat, "log-format", "", "log format: text or json (default text)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nTry %s --help for full usage.", err, version.Name)
	})

	return cmd
}

// run executes pidone with args and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}

	var usage *config.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stderr, "[%s] %v\n", version.Name, err)

	var startErr *process.StartError
	if errors.As(err, &startErr) {
		return 2
	}
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
