package testutil

import (
	"net"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestLocalAddr(t *testing.T) {
	addr := LocalAddr(t)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("address %s should be bindable: %v", addr, err)
	}
	ln.Close()
}

func TestEventually(t *testing.T) {
	calls := 0
	Eventually(t, 5*time.Second, "third call", func() bool {
		calls++
		return calls == 3
	})
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWrite(t *testing.T) {
	path := Write(t, t.TempDir(), "pidone.toml", "verbose = true\n", 0o600)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "verbose = true\n" {
		t.Errorf("content = %q", data)
	}
}

func TestScript(t *testing.T) {
	path := Script(t, t.TempDir(), "hook", "exit 4")

	err := exec.Command(path).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %v, want exit error", err)
	}
	if exitErr.ExitCode() != 4 {
		t.Fatalf("exit code = %d, want 4", exitErr.ExitCode())
	}
}
