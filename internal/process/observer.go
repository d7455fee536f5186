package process

import (
	"os"
	"strconv"
	"syscall"
)

// Observer environment variables. The DUMB_INIT_ names are set as well
// for hooks written against dumb-init.
const (
	SignumEnv            = "PIDONE_SIGNUM"
	ReplacementSignumEnv = "PIDONE_REPLACEMENT_SIGNUM"

	compatSignumEnv            = "DUMB_INIT_SIGNUM"
	compatReplacementSignumEnv = "DUMB_INIT_REPLACEMENT_SIGNUM"
)

// ObserverEnv appends the observer variables for sig to base. A dropped
// signal is reported with replacement 0.
func ObserverEnv(base []string, sig, replacement syscall.Signal) []string {
	s := strconv.Itoa(int(sig))
	r := strconv.Itoa(int(replacement))
	env := make([]string, 0, len(base)+4)
	env = append(env, base...)
	return append(env,
		SignumEnv+"="+s,
		ReplacementSignumEnv+"="+r,
		compatSignumEnv+"="+s,
		compatReplacementSignumEnv+"="+r,
	)
}

// StartObserver launches the observer executable at path with inherited
// stdio, running in dir. It is not waited on; the reaper collects it like
// any other descendant.
func StartObserver(sp ProcessSpawner, path, dir string, sig, replacement syscall.Signal) (int, error) {
	return sp.Spawn(SpawnConfig{
		Command: path,
		Dir:     dir,
		Env:     ObserverEnv(os.Environ(), sig, replacement),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
}
