package cmd

import (
	"bytes"
	"context"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// workspace moves the test into an empty directory with no user config and
// no SCRIPTKIT_* overrides, and returns that directory.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"SCRIPTKIT_LOG_LEVEL", "SCRIPTKIT_LOG_FILE", "SCRIPTKIT_NETWORK_HOST",
		"SCRIPTKIT_NETWORK_PORT", "SCRIPTKIT_NETWORK_TIMEOUT", "SCRIPTKIT_NETWORK_RETRIES",
		"SCRIPTKIT_MIN_DISK_GB",
		"NO_COLOR",
	} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

// runCLI executes the CLI in-process and returns its exit code and output.
func runCLI(t *testing.T, ctx context.Context, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := ExecuteContext(ctx, args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// localListener accepts and drops TCP connections until the test ends.
func localListener(t *testing.T) (string, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port
}
