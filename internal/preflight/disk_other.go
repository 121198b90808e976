//go:build !linux && !darwin

package preflight

import "errors"

func availableBytes(string) (uint64, error) {
	return 0, errors.New("disk space check not supported on this platform")
}
