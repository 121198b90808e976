package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MarkerFile records the time of the last passing validation in a state directory.
const MarkerFile = ".scriptkit-validated"

// NeedsCheck reports whether validation must run again for stateDir.
// It does when no marker exists, the marker is unreadable, or it is older
// than maxAge. A maxAge of zero means a marker never expires.
func NeedsCheck(stateDir string, maxAge time.Duration) bool {
	passedAt, ok := readMarker(stateDir)
	if !ok {
		return true
	}
	return maxAge > 0 && time.Since(passedAt) > maxAge
}

// MarkPassed writes the marker with the current UTC time.
func MarkPassed(stateDir string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	content := []byte(time.Now().UTC().Format(time.RFC3339) + "\n")
	return os.WriteFile(filepath.Join(stateDir, MarkerFile), content, 0o644)
}

// ClearMarker removes the marker, forcing a re-check on next run.
func ClearMarker(stateDir string) error {
	err := os.Remove(filepath.Join(stateDir, MarkerFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove marker file: %w", err)
	}
	return nil
}

// MarkerAge returns how long ago validation passed, or zero without a marker.
func MarkerAge(stateDir string) time.Duration {
	passedAt, ok := readMarker(stateDir)
	if !ok {
		return 0
	}
	return time.Since(passedAt)
}

func readMarker(stateDir string) (time.Time, bool) {
	content, err := os.ReadFile(filepath.Join(stateDir, MarkerFile))
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(content)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
