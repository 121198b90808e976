package preflight

import (
	"fmt"
	"strings"
)

// DefaultSupportedOS is used when CheckOS is given an empty list.
var DefaultSupportedOS = []string{"linux", "darwin", "windows"}

// CheckOS checks that the running GOOS is one of supported, ignoring case.
func (v *Validator) CheckOS(supported []string) bool {
	const name = "os"
	if len(supported) == 0 {
		supported = DefaultSupportedOS
	}

	for _, s := range supported {
		if strings.EqualFold(s, v.goos) {
			return v.pass(name, fmt.Sprintf("Operating system validation passed: %s", v.goos), "")
		}
	}

	return v.fail(name, fmt.Sprintf("Unsupported OS. Required: %v, Found: %s", supported, v.goos), "")
}
