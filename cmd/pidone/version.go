package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/kahiteam/pidone/internal/version"
)

func printVersion(w io.Writer) error {
	for _, line := range []string{
		fmt.Sprintf("%s %s", version.Name, version.Version),
		fmt.Sprintf("  commit:  %s", version.Commit),
		fmt.Sprintf("  built:   %s", version.Date),
		fmt.Sprintf("  go:      %s", version.Go()),
		fmt.Sprintf("  os/arch: %s/%s", runtime.GOOS, runtime.GOARCH),
	} {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
