package config

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/kahiteam/pidone/internal/signals"
)

// RewriteFlag collects repeated -r/--rewrite values. Each value is parsed
// as it is set, so a malformed spec stops option scanning immediately.
type RewriteFlag struct {
	specs []signals.Spec
}

var (
	_ pflag.Value      = (*RewriteFlag)(nil)
	_ pflag.SliceValue = (*RewriteFlag)(nil)
)

func (f *RewriteFlag) String() string {
	if len(f.specs) == 0 {
		return ""
	}
	return "[" + strings.Join(f.GetSlice(), ",") + "]"
}

// Set parses and appends one rewrite spec.
func (f *RewriteFlag) Set(v string) error {
	spec, err := signals.ParseSpec(v)
	if err != nil {
		return err
	}
	f.specs = append(f.specs, spec)
	return nil
}

// Type is shown as the value placeholder in usage output.
func (f *RewriteFlag) Type() string { return "s:r[:observer]" }

// Append implements pflag.SliceValue.
func (f *RewriteFlag) Append(v string) error { return f.Set(v) }

// Replace implements pflag.SliceValue.
func (f *RewriteFlag) Replace(vals []string) error {
	specs := make([]signals.Spec, 0, len(vals))
	for _, v := range vals {
		spec, err := signals.ParseSpec(v)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	f.specs = specs
	return nil
}

// GetSlice implements pflag.SliceValue.
func (f *RewriteFlag) GetSlice() []string {
	out := make([]string, len(f.specs))
	for i, s := range f.specs {
		out[i] = s.String()
	}
	return out
}

// Specs returns the parsed specs in the order they were given.
func (f *RewriteFlag) Specs() []signals.Spec { return f.specs }
