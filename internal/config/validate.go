package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// validLogFormats lists the accepted log_format values.
var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

// Validate checks the resolved config for semantic errors and returns all
// of them at once.
func Validate(cfg *Config) error {
	var result *multierror.Error

	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		result = multierror.Append(result, fmt.Errorf("command is required"))
	}

	if !validLogFormats[cfg.LogFormat] {
		result = multierror.Append(result, fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat))
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			result = multierror.Append(result, fmt.Errorf("metrics_addr %q: %w", cfg.MetricsAddr, err))
		}
	}

	return finish(result)
}

// finish formats a multierror as a plain message when it holds a single
// error and as a semicolon list otherwise.
func finish(result *multierror.Error) error {
	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return result.ErrorOrNil()
}
