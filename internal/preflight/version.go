package preflight

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a major.minor language version.
type Version struct {
	Major int
	Minor int
}

// String formats the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v >= min.
func (v Version) AtLeast(min Version) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	return v.Minor >= min.Minor
}

// ParseVersion parses "1.21", "1.21.3", "go1.21" or "go1.22rc1".
// Only the major and minor components are kept.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "go")
	parts := strings.SplitN(raw, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("invalid version %q: want major.minor", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("invalid major version in %q", s)
	}

	// Pre-release suffixes such as "22rc1" keep their leading digits.
	minorDigits := parts[1]
	for i, r := range minorDigits {
		if r < '0' || r > '9' {
			minorDigits = minorDigits[:i]
			break
		}
	}
	minor, err := strconv.Atoi(minorDigits)
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q", s)
	}

	return Version{Major: major, Minor: minor}, nil
}

// CheckGoVersion checks that the running Go toolchain version is at least min.
// Development builds report no parseable version and pass with a warning.
func (v *Validator) CheckGoVersion(min Version) bool {
	const name = "go_version"
	raw := v.goVersion()

	current, err := ParseVersion(raw)
	if err != nil {
		v.warn(name, fmt.Sprintf("Unable to determine Go version from %q, assuming it is supported", raw), err.Error(), true)
		return true
	}

	if current.AtLeast(min) {
		return v.pass(name, fmt.Sprintf("Go version validation passed: %s", current), raw)
	}
	return v.fail(name, fmt.Sprintf("Go version %s is below minimum required %s", current, min), raw)
}
