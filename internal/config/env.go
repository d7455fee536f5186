package config

import "os"

// Environment overrides, evaluated after flags. The DUMB_INIT_ names are
// accepted so pidone can replace dumb-init without touching images.
const (
	DebugEnv  = "PIDONE_DEBUG"
	SetsidEnv = "PIDONE_SETSID"

	compatDebugEnv  = "DUMB_INIT_DEBUG"
	compatSetsidEnv = "DUMB_INIT_SETSID"
)

// debugForced reports whether the environment turns debug logging on.
func debugForced() bool {
	return envIs(DebugEnv, "1") || envIs(compatDebugEnv, "1")
}

// setsidDisabled reports whether the environment turns process-group mode off.
func setsidDisabled() bool {
	return envIs(SetsidEnv, "0") || envIs(compatSetsidEnv, "0")
}

func envIs(key, want string) bool {
	v, ok := os.LookupEnv(key)
	return ok && v == want
}

// applyEnv applies the environment overrides. They can only turn debug
// on and process-group mode off.
func applyEnv(cfg *Config) {
	if debugForced() {
		cfg.Debug = true
	}
	if setsidDisabled() {
		cfg.UseSetsid = false
	}
}
