//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kahiteam/pidone/internal/testutil"
)

// pidoneBinary is the path to the built pidone binary, set by TestMain.
var pidoneBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "pidone-e2e-bin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	pidoneBinary = filepath.Join(tmpDir, "pidone")
	cmd := exec.Command("go", "build", "-race", "-o", pidoneBinary, "github.com/kahiteam/pidone/cmd/pidone")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build pidone binary: %v\n", err)
		os.Exit(1)
	}

	// Suite-wide 5-minute timeout fallback.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintln(os.Stderr, "E2E suite timeout exceeded (5 minutes)")
			os.Exit(2)
		}
	}()

	os.Exit(m.Run())
}

// cleanEnv returns the test environment without pidone's own variables.
func cleanEnv(extra ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PIDONE_") || strings.HasPrefix(kv, "DUMB_INIT_") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, extra...)
}

// start runs pidone with args in a fresh directory.
func start(t *testing.T, dir string, args ...string) *testutil.E2EProcess {
	t.Helper()
	return testutil.StartPidone(t, pidoneBinary, dir, cleanEnv(), args...)
}

// run runs pidone to completion and returns it with its exit code.
func run(t *testing.T, dir string, env []string, args ...string) (*testutil.E2EProcess, int) {
	t.Helper()
	if env == nil {
		env = cleanEnv()
	}
	return testutil.RunPidone(t, pidoneBinary, dir, env, args...)
}

// waitForFile waits until path exists.
func waitForFile(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	testutil.Eventually(t, timeout, path, func() bool {
		_, err := os.Stat(path)
		return err == nil
	})
}

// readFile returns the trimmed content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.TrimSpace(string(data))
}

// trapScript writes a child script that runs setup, marks itself ready by
// creating the file "ready" and then idles until a trap exits it.
func trapScript(t *testing.T, dir, traps string) string {
	t.Helper()
	return testutil.Script(t, dir, "child.sh", traps+`
touch ready
while :; do sleep 0.1; done`)
}
