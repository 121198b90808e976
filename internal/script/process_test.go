package script

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestProcess_Directory(t *testing.T) {
	// Given: a directory with three direct entries, one of them nested
	input := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "b.txt"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(input, "sub", "deeper"), 0o755))
	output := filepath.Join(t.TempDir(), "out.json")
	logger, logs := testLogger(t)

	// When: processing
	p := &Processor{Logger: logger, Format: FormatJSON, RunID: "01TEST", Now: fixedNow}
	result, err := p.Process(context.Background(), input, output)

	// Then: the item count covers direct entries only
	require.NoError(t, err)
	assert.Equal(t, "directory", result.Details.Type)
	require.NotNil(t, result.Details.Items)
	assert.Equal(t, 3, *result.Details.Items)
	assert.Nil(t, result.Details.Size)
	assert.Contains(t, logs.String(), "Processing directory with 3 items")

	var written map[string]any
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, "2026-01-02T03:04:05Z", written["processed_at"])
	assert.Equal(t, "success", written["status"])
	assert.Equal(t, "01TEST", written["run_id"])
	assert.Equal(t, map[string]any{"type": "directory", "items": float64(3)}, written["details"])
}

func TestProcess_File(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello world"), 0o644))
	output := filepath.Join(t.TempDir(), "out.json")
	logger, logs := testLogger(t)

	result, err := ProcessData(context.Background(), input, output, logger)

	require.NoError(t, err)
	assert.Equal(t, "file", result.Details.Type)
	require.NotNil(t, result.Details.Size)
	assert.Equal(t, int64(11), *result.Details.Size)
	assert.Contains(t, logs.String(), "Processing file of size 11 bytes")
	assert.Contains(t, logs.String(), "Output saved to:")
}

func TestProcess_JSONIsIndentedAndUnescaped(t *testing.T) {
	// Given: an input path with non-ASCII and HTML-significant characters
	dir := t.TempDir()
	input := filepath.Join(dir, "zażółć <&>.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	output := filepath.Join(dir, "out.json")
	logger, _ := testLogger(t)

	// When: processing
	_, err := ProcessData(context.Background(), input, output, logger)
	require.NoError(t, err)

	// Then: characters are written verbatim with 2-space indentation
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "zażółć <&>.txt")
	assert.Contains(t, text, "\n  \"input_path\": ")
	assert.Contains(t, text, "\n    \"type\": \"file\"")
	assert.True(t, strings.HasPrefix(text, "{\n  \"processed_at\""))
}

func TestProcess_YAML(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("abc"), 0o644))
	output := filepath.Join(t.TempDir(), "out.yaml")
	logger, _ := testLogger(t)

	p := &Processor{Logger: logger, Format: FormatYAML, Now: fixedNow}
	_, err := p.Process(context.Background(), input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var got Result
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "file", got.Details.Type)
	assert.Equal(t, int64(3), *got.Details.Size)
	assert.NotContains(t, string(data), "run_id", "empty run id is omitted")
}

func TestProcess_CancelledContext(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	output := filepath.Join(t.TempDir(), "out.json")
	logger, _ := testLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessData(ctx, input, output, logger)

	assert.Equal(t, errors.ErrCodeInterrupted, errors.GetCode(err))
	assert.NoFileExists(t, output)
}

func TestProcess_WriteFailure(t *testing.T) {
	// Given: an output whose parent directory does not exist
	input := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	output := filepath.Join(t.TempDir(), "missing", "out.json")
	logger, logs := testLogger(t)

	// When: processing
	_, err := ProcessData(context.Background(), input, output, logger)

	// Then: the failure is logged and wrapped as a processing failure
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeProcessingFailed, errors.GetCode(err))
	assert.Contains(t, logs.String(), "Error in processing")
	assert.Contains(t, logs.String(), "error_code=ERR_205_WRITE_FAILED")
}

func TestWriteError_DiskFullIsFatal(t *testing.T) {
	full := &os.PathError{Op: "write", Path: "out.json", Err: syscall.ENOSPC}

	e := writeError("out.json", full)

	assert.Equal(t, errors.ErrCodeDiskFull, e.Code)
	assert.Equal(t, errors.SeverityFatal, e.Severity)
	assert.Equal(t, "out.json", e.Details["path"])
	assert.ErrorIs(t, e, syscall.ENOSPC)

	other := writeError("out.json", &os.PathError{Op: "open", Path: "out.json", Err: syscall.EACCES})
	assert.Equal(t, errors.ErrCodeWriteFailed, other.Code)
}
