package config

import (
	"fmt"
	"os"
)

// ConfigEnv names the environment variable that points at a config file.
const ConfigEnv = "PIDONE_CONFIG"

// Resolve finds the config file path by checking, in order:
//  1. Explicit path from --config (if non-empty)
//  2. PIDONE_CONFIG environment variable
//
// The config file is optional: an empty path and nil error mean none was
// requested.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("cannot read config: %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if env := os.Getenv(ConfigEnv); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", fmt.Errorf("cannot read config: %s: %w", env, err)
		}
		return env, nil
	}

	return "", nil
}
