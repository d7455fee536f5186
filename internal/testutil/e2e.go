//go:build e2e

package testutil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

// DefaultE2ETimeout is the maximum time a single pidone run may take.
const DefaultE2ETimeout = 30 * time.Second

// E2EProcess is a running pidone binary started for end-to-end testing.
type E2EProcess struct {
	Cmd    *exec.Cmd
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
	cancel context.CancelFunc
}

// StartPidone starts binary with args in dir. The process is killed at
// cleanup if it is still running.
func StartPidone(t *testing.T, binary, dir string, env []string, args ...string) *E2EProcess {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultE2ETimeout)
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Env = env
	// Keep pidone out of the test runner's process group so signals sent
	// to it do not reach the runner.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	p := &E2EProcess{
		Cmd:    cmd,
		Stdout: new(bytes.Buffer),
		Stderr: new(bytes.Buffer),
		cancel: cancel,
	}
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		t.Fatalf("cannot start pidone: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})
	return p
}

// Signal sends sig to the pidone process.
func (p *E2EProcess) Signal(sig syscall.Signal) error {
	return p.Cmd.Process.Signal(sig)
}

// Wait waits for pidone to exit and returns its exit code. A pidone killed
// by a signal is reported as -1.
func (p *E2EProcess) Wait(t *testing.T) int {
	t.Helper()
	defer p.cancel()

	err := p.Cmd.Wait()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	t.Fatalf("wait: %v", err)
	return -1
}

// RunPidone runs binary to completion and returns its exit code.
func RunPidone(t *testing.T, binary, dir string, env []string, args ...string) (*E2EProcess, int) {
	t.Helper()
	p := StartPidone(t, binary, dir, env, args...)
	return p, p.Wait(t)
}
