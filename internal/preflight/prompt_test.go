package preflight

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Aman-CERP/scriptkit/internal/logging"
)

// captureLogs swaps v's logger for one writing to the returned buffer.
func captureLogs(t *testing.T, v *Validator) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, cleanup, err := logging.Setup(logging.Config{Level: "DEBUG"}, buf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	v.logger = logger
	return buf
}

func TestPromptWithTimeout_ReturnsTypedLine(t *testing.T) {
	out := &bytes.Buffer{}
	v := New(WithInput(strings.NewReader("yes please\r\n")), WithOutput(out))

	got := v.PromptWithTimeout(context.Background(), "Continue? (y/N)", 5*time.Second, "n")

	assert.Equal(t, "yes please", got)
	assert.Equal(t, "Continue? (y/N) (auto-continues in 5s): ", out.String())
}

func TestPromptWithTimeout_EmptyLineIsAnAnswer(t *testing.T) {
	v := New(WithInput(strings.NewReader("\n")), WithOutput(&bytes.Buffer{}))

	assert.Equal(t, "", v.PromptWithTimeout(context.Background(), "Name", time.Second, "anon"))
}

func TestPromptWithTimeout_EOFReturnsDefault(t *testing.T) {
	v := New(WithInput(strings.NewReader("")), WithOutput(&bytes.Buffer{}))
	logs := captureLogs(t, v)

	got := v.PromptWithTimeout(context.Background(), "Continue?", time.Second, "n")

	assert.Equal(t, "n", got)
	assert.Contains(t, logs.String(), "No input detected, using default: n")
}

func TestPromptWithTimeout_PartialLineAtEOF(t *testing.T) {
	v := New(WithInput(strings.NewReader("y")), WithOutput(&bytes.Buffer{}))

	assert.Equal(t, "y", v.PromptWithTimeout(context.Background(), "Continue?", time.Second, "n"))
}

func TestPromptWithTimeout_SequentialPromptsShareInput(t *testing.T) {
	v := New(WithInput(strings.NewReader("first\nsecond\n")), WithOutput(&bytes.Buffer{}))

	assert.Equal(t, "first", v.PromptWithTimeout(context.Background(), "1", time.Second, ""))
	assert.Equal(t, "second", v.PromptWithTimeout(context.Background(), "2", time.Second, ""))
}

func TestPromptWithTimeout_TimeoutReturnsDefaultWithoutLeaking(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Given: an input that never produces a line
	pr, pw := io.Pipe()
	out := &bytes.Buffer{}
	v := New(WithInput(pr), WithOutput(out))
	logs := captureLogs(t, v)

	// When: the prompt times out
	start := time.Now()
	got := v.PromptWithTimeout(context.Background(), "Continue?", 50*time.Millisecond, "n")

	// Then: the default comes back promptly and the line is terminated
	assert.Equal(t, "n", got)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	assert.Contains(t, logs.String(), "level=WARNING")

	// Closing the input releases the reader goroutine
	require.NoError(t, pw.Close())
}

func TestPromptWithTimeout_ContextCancelReturnsDefault(t *testing.T) {
	defer goleak.VerifyNone(t)

	pr, pw := io.Pipe()
	v := New(WithInput(pr), WithOutput(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	got := v.PromptWithTimeout(ctx, "Continue?", time.Minute, "fallback")

	assert.Equal(t, "fallback", got)
	require.NoError(t, pw.Close())
}

func TestPromptWithTimeout_LateAnswerGoesToNextPrompt(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Given: a first prompt that nobody answers in time
	pr, pw := io.Pipe()
	v := New(WithInput(pr), WithOutput(&bytes.Buffer{}))
	assert.Equal(t, "d1", v.PromptWithTimeout(context.Background(), "1", 20*time.Millisecond, "d1"))

	// When: the answer arrives during the second prompt
	go func() {
		_, _ = pw.Write([]byte("late\n"))
	}()
	got := v.PromptWithTimeout(context.Background(), "2", 5*time.Second, "d2")

	// Then: the second prompt receives it
	assert.Equal(t, "late", got)
	require.NoError(t, pw.Close())
}
