package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// SystemInfo is a snapshot of the host and process, gathered for logging.
type SystemInfo struct {
	GoVersion        string `json:"go_version"`
	Platform         string `json:"platform"`
	Architecture     string `json:"architecture"`
	Processor        string `json:"processor"`
	Hostname         string `json:"hostname"`
	User             string `json:"user"`
	ScriptPath       string `json:"script_path"`
	WorkingDirectory string `json:"working_directory"`
	Executable       string `json:"executable"`
}

// Entry is one key/value pair of SystemInfo.
type Entry struct {
	Key   string
	Value string
}

// GatherSystemInfo collects the current SystemInfo. Lookups that fail are
// reported as "Unknown".
func (v *Validator) GatherSystemInfo() SystemInfo {
	info := SystemInfo{
		GoVersion:    v.goVersion(),
		Platform:     v.goos + "/" + runtime.GOARCH,
		Architecture: strconv.Itoa(strconv.IntSize) + "bit",
		Processor:    fmt.Sprintf("%s (%d CPUs)", runtime.GOARCH, runtime.NumCPU()),
		Hostname:     unknown,
		User:         currentUser(),
		ScriptPath:   unknown,
	}

	if h, err := os.Hostname(); err == nil && h != "" {
		info.Hostname = h
	}
	if len(os.Args) > 0 {
		if p, err := filepath.Abs(os.Args[0]); err == nil {
			if resolved, err := filepath.EvalSymlinks(p); err == nil {
				p = resolved
			}
			info.ScriptPath = p
		}
	}
	if wd, err := os.Getwd(); err == nil {
		info.WorkingDirectory = wd
	} else {
		info.WorkingDirectory = unknown
	}
	if exe, err := os.Executable(); err == nil {
		info.Executable = exe
	} else {
		info.Executable = unknown
	}

	return info
}

const unknown = "Unknown"

func currentUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return unknown
}

// Entries returns the fields in logging order.
func (s SystemInfo) Entries() []Entry {
	return []Entry{
		{"go_version", s.GoVersion},
		{"platform", s.Platform},
		{"architecture", s.Architecture},
		{"processor", s.Processor},
		{"hostname", s.Hostname},
		{"user", s.User},
		{"script_path", s.ScriptPath},
		{"working_directory", s.WorkingDirectory},
		{"executable", s.Executable},
	}
}
