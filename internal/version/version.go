// Package version holds build-time version metadata.
package version

import "runtime"

// Name is the program name used in diagnostics and usage text.
const Name = "pidone"

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = ""
)

// Go returns the toolchain version the binary was built with.
func Go() string {
	if GoVersion != "" {
		return GoVersion
	}
	return runtime.Version()
}
