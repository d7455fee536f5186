package process

import (
	"os"
	"slices"
	"syscall"
	"testing"
)

func TestObserverEnv(t *testing.T) {
	base := []string{"PATH=/bin"}
	env := ObserverEnv(base, syscall.SIGUSR1, 0)

	for _, want := range []string{
		"PATH=/bin",
		"PIDONE_SIGNUM=10",
		"PIDONE_REPLACEMENT_SIGNUM=0",
		"DUMB_INIT_SIGNUM=10",
		"DUMB_INIT_REPLACEMENT_SIGNUM=0",
	} {
		if !slices.Contains(env, want) {
			t.Errorf("env missing %q: %v", want, env)
		}
	}
	if len(base) != 1 {
		t.Fatal("base slice was modified")
	}
}

func TestStartObserver(t *testing.T) {
	m := &MockSpawner{}
	pid, err := StartObserver(m, "/usr/local/bin/hook", "/srv/app", syscall.SIGTERM, syscall.SIGINT)
	if err != nil {
		t.Fatal(err)
	}
	if pid != 1001 {
		t.Fatalf("pid = %d", pid)
	}
	call := m.SpawnCalls[0]
	if call.Command != "/usr/local/bin/hook" || len(call.Args) != 0 {
		t.Fatalf("call = %+v", call)
	}
	if call.Dir != "/srv/app" {
		t.Fatalf("dir = %q, want /srv/app", call.Dir)
	}
	if call.Setsid || call.Setctty {
		t.Fatal("observers stay in the supervisor's session")
	}
	if call.Stdout != os.Stdout || call.Stderr != os.Stderr {
		t.Fatal("observer should inherit stdio")
	}
	if !slices.Contains(call.Env, "PIDONE_REPLACEMENT_SIGNUM=2") {
		t.Fatalf("env = %v", call.Env)
	}
}
