//go:build linux || darwin

package preflight

import "syscall"

// availableBytes returns the space available to unprivileged users at path.
func availableBytes(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
