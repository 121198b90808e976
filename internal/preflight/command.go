package preflight

import "fmt"

// CheckCommand checks that name, or one of its alternatives, is on PATH.
// A missing command counts as one failure no matter how many alternatives
// were tried.
func (v *Validator) CheckCommand(name string, alternatives ...string) bool {
	const check = "command"

	if path, err := v.lookPath(name); err == nil {
		return v.pass(check, fmt.Sprintf("Command validation passed: %s", name), path)
	}

	for _, alt := range alternatives {
		if path, err := v.lookPath(alt); err == nil {
			return v.pass(check, fmt.Sprintf("Command validation passed: %s (alternative for %s)", alt, name), path)
		}
	}

	return v.fail(check, fmt.Sprintf("Required command not found: %s", name), "")
}
