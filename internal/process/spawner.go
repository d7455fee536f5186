// Package process starts the supervised command and its signal observers.
package process

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// SpawnConfig holds the parameters needed to spawn a child process.
type SpawnConfig struct {
	Command string   // program name, resolved against $PATH when it has no slash
	Args    []string // command arguments (not including argv[0])
	Env     []string // environment variables (KEY=VALUE); nil inherits
	Dir     string   // working directory; empty inherits
	Stdin   *os.File // nil = /dev/null
	Stdout  *os.File // nil = /dev/null
	Stderr  *os.File // nil = /dev/null
	Setsid  bool     // start the child in a new session
	Setctty bool     // make Stdin the child's controlling terminal; needs Setsid
}

// ProcessSpawner creates child processes and returns their pid. The
// caller owns reaping: no implementation waits on the child.
// Implementations include ExecSpawner (real) and MockSpawner (testing).
type ProcessSpawner interface {
	Spawn(cfg SpawnConfig) (int, error)
}

// ExecSpawner spawns real OS processes via os/exec.
type ExecSpawner struct {
	Logger *slog.Logger
}

// Spawn starts a real child process with the given config. Errors are
// classified into *StartError and *SetupError.
//
// The runtime reports a failed terminal claim the same way as a failed
// exec, so when Setctty is requested and the fork/exec fails the spawn is
// retried once without it. Claiming the terminal is never fatal.
func (s *ExecSpawner) Spawn(cfg SpawnConfig) (int, error) {
	pid, err := s.start(cfg)
	if err != nil && cfg.Setsid && cfg.Setctty && isForkExec(err) {
		s.logger().Debug("unable to attach to controlling tty, starting without it",
			"command", cfg.Command, "error", err)
		cfg.Setctty = false
		pid, err = s.start(cfg)
	}
	if err != nil {
		return 0, classify(cfg.Command, cfg.Setsid, err)
	}
	return pid, nil
}

func (s *ExecSpawner) start(cfg SpawnConfig) (int, error) {
	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Env = cfg.Env
	cmd.Dir = cfg.Dir

	// A nil *os.File stored in an io.Reader is not a nil interface.
	if cfg.Stdin != nil {
		cmd.Stdin = cfg.Stdin
	}
	if cfg.Stdout != nil {
		cmd.Stdout = cfg.Stdout
	}
	if cfg.Stderr != nil {
		cmd.Stderr = cfg.Stderr
	}

	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  cfg.Setsid,
		Setctty: cfg.Setsid && cfg.Setctty,
		Ctty:    0, // child's stdin
	}

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	// The reaper collects the child with wait4(-1); drop the handle so the
	// runtime never waits on it.
	_ = cmd.Process.Release()
	return pid, nil
}

func (s *ExecSpawner) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func isForkExec(err error) bool {
	var pe *fs.PathError
	return errors.As(err, &pe) && pe.Op == "fork/exec"
}

// MockSpawner is a test double for ProcessSpawner.
type MockSpawner struct {
	SpawnFn    func(cfg SpawnConfig) (int, error)
	SpawnCalls []SpawnConfig
}

// Spawn records the call and delegates to SpawnFn.
func (m *MockSpawner) Spawn(cfg SpawnConfig) (int, error) {
	m.SpawnCalls = append(m.SpawnCalls, cfg)
	if m.SpawnFn != nil {
		return m.SpawnFn(cfg)
	}
	return 1000 + len(m.SpawnCalls), nil
}
