//go:build !linux

package process

import "errors"

// SetSubreaper is only available on Linux.
func SetSubreaper() error {
	return errors.ErrUnsupported
}
