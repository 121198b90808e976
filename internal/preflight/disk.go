package preflight

import "fmt"

// DefaultMinDiskGB is the free space DefaultRequirements asks for.
const DefaultMinDiskGB = 0.1

const bytesPerGB = 1024 * 1024 * 1024

// CheckDiskSpace checks that at least minGB gigabytes are available at path.
// Platforms without statfs, and statfs errors, pass with a warning.
func (v *Validator) CheckDiskSpace(path string, minGB float64) bool {
	const name = "disk_space"

	avail, err := v.diskFree(path)
	if err != nil {
		v.warn(name, "Unable to check disk space on this system", err.Error(), true)
		return true
	}

	availGB := float64(avail) / bytesPerGB
	if availGB >= minGB {
		return v.pass(name, fmt.Sprintf("Disk space validation passed: %.2fGB available", availGB), formatBytes(avail))
	}
	return v.fail(name, fmt.Sprintf("Insufficient disk space. Required: %gGB, Available: %.2fGB", minGB, availGB), formatBytes(avail))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
