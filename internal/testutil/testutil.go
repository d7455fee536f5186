// Package testutil provides helpers shared by the pidone test suites.
package testutil

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// LocalAddr returns a loopback host:port that was unused when checked.
func LocalAddr(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("no free loopback port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().String()
}

// Eventually polls cond until it holds. The test fails with what once
// timeout expires.
func Eventually(t testing.TB, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-tick.C:
		case <-deadline:
			t.Fatalf("timed out after %v waiting for %s", timeout, what)
		}
	}
}

// Write creates dir/name with the given content and permissions.
func Write(t testing.TB, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	return path
}

// Script creates an executable /bin/sh script dir/name running body.
func Script(t testing.TB, dir, name, body string) string {
	t.Helper()
	return Write(t, dir, name, "#!/bin/sh\n"+body+"\n", 0o755)
}
