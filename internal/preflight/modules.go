package preflight

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// linkedModules returns the main module path and every dependency path
// recorded in the binary's build info.
func linkedModules() []string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	mods := make([]string, 0, len(info.Deps)+1)
	if info.Main.Path != "" {
		mods = append(mods, info.Main.Path)
	}
	for _, dep := range info.Deps {
		mods = append(mods, dep.Path)
		if dep.Replace != nil {
			mods = append(mods, dep.Replace.Path)
		}
	}
	return mods
}

// CheckModules checks that every module path in names is linked into the
// running binary. Each missing module counts as its own failure.
func (v *Validator) CheckModules(names []string) bool {
	const check = "modules"

	linked := make(map[string]bool)
	for _, m := range v.modules() {
		linked[m] = true
	}

	var missing []string
	for _, name := range names {
		if linked[name] {
			v.pass(check, fmt.Sprintf("Module validation passed: %s", name), "")
			continue
		}
		v.fail(check, fmt.Sprintf("Required module not available: %s", name), "")
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		v.logger.Error(fmt.Sprintf("Missing required modules: %s", strings.Join(missing, ", ")))
		return false
	}
	return true
}
