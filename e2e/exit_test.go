//go:build e2e

package e2e

import (
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kahiteam/pidone/internal/testutil"
)

func TestExit_ChildStatus(t *testing.T) {
	dir := t.TempDir()
	if _, code := run(t, dir, nil, "sh", "-c", "exit 7"); code != 7 {
		t.Fatalf("exit code = %d, want 7", code)
	}
}

func TestExit_ChildSuccess(t *testing.T) {
	dir := t.TempDir()
	if _, code := run(t, dir, nil, "true"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestExit_ChildKilled(t *testing.T) {
	dir := t.TempDir()
	if _, code := run(t, dir, nil, "sh", "-c", "kill -9 $$"); code != 137 {
		t.Fatalf("exit code = %d, want 137", code)
	}
}

func TestExit_CommandNotFound(t *testing.T) {
	dir := t.TempDir()
	p, code := run(t, dir, nil, "pidone-e2e-no-such-command")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(p.Stderr.String(), "[pidone] pidone-e2e-no-such-command:") {
		t.Fatalf("stderr = %q", p.Stderr.String())
	}
}

func TestExit_NotExecutable(t *testing.T) {
	dir := t.TempDir()
	path := testutil.Write(t, dir, "plain.txt", "not a program", 0o644)
	p, code := run(t, dir, nil, path)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(p.Stderr.String(), path) {
		t.Fatalf("stderr = %q", p.Stderr.String())
	}
}

func TestExit_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", []string{"-v"}, "Usage: pidone"},
		{"rewrite out of range", []string{"-r", "40:1", "true"}, "out of range"},
		{"malformed rewrite", []string{"-r", "15", "true"}, "invalid rewrite"},
		{"unknown flag", []string{"--bogus", "true"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			p, code := run(t, dir, nil, tt.args...)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(p.Stderr.String(), tt.want) {
				t.Fatalf("stderr = %q, want %q", p.Stderr.String(), tt.want)
			}
		})
	}
}

func TestExit_HelpAndVersion(t *testing.T) {
	for _, arg := range []string{"--help", "-V"} {
		dir := t.TempDir()
		p, code := run(t, dir, nil, arg)
		if code != 0 {
			t.Fatalf("%s: exit code = %d, want 0", arg, code)
		}
		if !strings.Contains(p.Stderr.String(), "pidone") {
			t.Fatalf("%s: stderr = %q", arg, p.Stderr.String())
		}
	}
}

func TestExit_TermForwarded(t *testing.T) {
	dir := t.TempDir()
	p := start(t, dir, "sh", "-c", "touch ready; exec sleep 30")
	waitForFile(t, dir+"/ready", 5*time.Second)

	if err := p.Signal(syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}
	if code := p.Wait(t); code != 143 {
		t.Fatalf("exit code = %d, want 143", code)
	}
}

func TestExit_OrphansReaped(t *testing.T) {
	dir := t.TempDir()
	// The grandchild outlives its parent and is reparented. pidone must
	// still exit with the child's status once the child is gone.
	if _, code := run(t, dir, nil, "sh", "-c", "sh -c 'sleep 0.2' & exit 5"); code != 5 {
		t.Fatalf("exit code = %d, want 5", code)
	}
}
