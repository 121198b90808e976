package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// PathKind restricts what CheckPath accepts.
type PathKind int

const (
	// KindAny accepts files and directories.
	KindAny PathKind = iota
	// KindFile requires a regular file or other non-directory.
	KindFile
	// KindDir requires a directory.
	KindDir
)

// String returns "any", "file" or "directory".
func (k PathKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "any"
	}
}

// CheckPath checks that path exists, matches kind and, when writable is set,
// that a probe file can be created next to it. Directories are probed inside,
// files in their parent directory.
func (v *Validator) CheckPath(path string, kind PathKind, writable bool) bool {
	const name = "path"

	info, err := os.Stat(path)
	if err != nil {
		return v.fail(name, fmt.Sprintf("Path does not exist: %s", path), err.Error())
	}

	switch {
	case kind == KindFile && info.IsDir():
		return v.fail(name, fmt.Sprintf("Path is not a file: %s", path), "")
	case kind == KindDir && !info.IsDir():
		return v.fail(name, fmt.Sprintf("Path is not a directory: %s", path), "")
	}

	if writable {
		dir := path
		if !info.IsDir() {
			dir = filepath.Dir(path)
		}
		if err := probeWrite(dir); err != nil {
			return v.fail(name, fmt.Sprintf("Path %s is not writable: %v", path, err), "")
		}
		v.logger.Info(fmt.Sprintf("Write access validated: %s", path))
	}

	return v.pass(name, fmt.Sprintf("Path validation passed: %s", path), kind.String())
}

// probeWrite creates and removes a uniquely named file in dir.
func probeWrite(dir string) error {
	probe := filepath.Join(dir, ".scriptkit-write-test-"+strconv.FormatInt(time.Now().UnixNano(), 36))
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	_ = f.Close()
	return os.Remove(probe)
}
