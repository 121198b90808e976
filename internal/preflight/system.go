package preflight

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Requirements describes what ValidateSystem checks.
type Requirements struct {
	MinGoVersion Version
	// SupportedOS is skipped when empty.
	SupportedOS []string
	Commands    []string
	// Modules is skipped when empty.
	Modules []string
	// WorkDir defaults to the process working directory.
	WorkDir string

	NetworkHost    string
	NetworkPort    int
	NetworkTimeout time.Duration
	// MinDiskGB is the free space required in WorkDir. Zero disables the
	// threshold; free space is still reported.
	MinDiskGB float64
}

// DefaultRequirements returns the requirements used when nothing is configured.
func DefaultRequirements() Requirements {
	return Requirements{
		MinGoVersion:   Version{Major: 1, Minor: 21},
		SupportedOS:    append([]string(nil), DefaultSupportedOS...),
		NetworkHost:    "github.com",
		NetworkPort:    443,
		NetworkTimeout: DefaultNetworkTimeout,
		MinDiskGB:      DefaultMinDiskGB,
	}
}

// ValidateSystem logs a system snapshot and runs every check in req, in order.
// Network failure is only a warning. It returns true when no check failed.
func (v *Validator) ValidateSystem(ctx context.Context, req Requirements) bool {
	v.logger.Info("Starting comprehensive system validation...")

	v.logger.Info("System Information:")
	for _, e := range v.GatherSystemInfo().Entries() {
		v.logger.Info(fmt.Sprintf("  %s: %s", e.Key, e.Value))
	}

	v.CheckGoVersion(req.MinGoVersion)

	if len(req.SupportedOS) > 0 {
		v.CheckOS(req.SupportedOS)
	}

	for _, cmd := range req.Commands {
		v.CheckCommand(cmd)
	}

	if len(req.Modules) > 0 {
		v.CheckModules(req.Modules)
	}

	workDir := req.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		workDir = wd
	}
	v.CheckPath(workDir, KindDir, true)

	host, port := req.NetworkHost, req.NetworkPort
	if host == "" {
		host = "github.com"
	}
	if port == 0 {
		port = 443
	}
	if !v.CheckNetwork(ctx, host, port, req.NetworkTimeout) {
		v.logger.Warn("Network validation failed, continuing anyway")
	}

	v.CheckDiskSpace(workDir, req.MinDiskGB)

	if v.errors > 0 {
		v.logger.Error(fmt.Sprintf("System validation failed with %d errors", v.errors))
		return false
	}
	v.logger.Info("System validation completed successfully")
	return true
}
