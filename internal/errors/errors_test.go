package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with Error
	err := New(ErrCodeWriteFailed, "cannot write out.json", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, err)
	assert.Equal(t, originalErr, errors.Unwrap(err))
	assert.True(t, errors.Is(err, originalErr))
}

func TestError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigInvalid,
			message:  "config file is invalid",
			expected: "[ERR_102_CONFIG_INVALID] config file is invalid",
		},
		{
			name:     "input missing",
			code:     ErrCodeInputNotFound,
			message:  "input path does not exist: in.txt",
			expected: "[ERR_402_INPUT_NOT_FOUND] input path does not exist: in.txt",
		},
		{
			name:     "network error",
			code:     ErrCodeNetworkTimeout,
			message:  "dial timed out",
			expected: "[ERR_301_NETWORK_TIMEOUT] dial timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeOutputExists, "out A exists", nil)
	err2 := New(ErrCodeOutputExists, "out B exists", nil)

	assert.True(t, errors.Is(err1, err2))
}

func TestError_Is_DoesNotMatchDifferentCodes(t *testing.T) {
	err1 := New(ErrCodeInputNotFound, "input missing", nil)
	err2 := New(ErrCodeOutputExists, "output exists", nil)

	assert.False(t, errors.Is(err1, err2))
}

func TestError_Is_ThroughFmtWrap(t *testing.T) {
	// Given: a structured error wrapped by fmt.Errorf
	inner := New(ErrCodeOutputLocked, "locked", nil)
	wrapped := fmt.Errorf("process: %w", inner)

	// Then: code lookups see through the wrap
	assert.True(t, errors.Is(wrapped, New(ErrCodeOutputLocked, "", nil)))
	assert.Equal(t, ErrCodeOutputLocked, GetCode(wrapped))
	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CategoryIO, e.Category)
}

func TestError_WithDetail_AddsContext(t *testing.T) {
	err := New(ErrCodeInputNotFound, "input missing", nil)

	err = err.WithDetail("path", "/foo/bar.txt")
	err = err.WithDetail("force", "false")

	assert.Equal(t, "/foo/bar.txt", err.Details["path"])
	assert.Equal(t, "false", err.Details["force"])
}

func TestError_WithSuggestion_AddsSuggestion(t *testing.T) {
	err := New(ErrCodeOutputExists, "output exists", nil).
		WithSuggestion("Pass --force to overwrite")

	assert.Equal(t, "Pass --force to overwrite", err.Suggestion)
}

func TestError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeDiskFull, CategoryIO},
		{ErrCodeOutputLocked, CategoryIO},
		{ErrCodeNetworkTimeout, CategoryNetwork},
		{ErrCodeNetworkUnavailable, CategoryNetwork},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeOutputExists, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{ErrCodeProcessingFailed, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestError_SeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantSeverity Severity
	}{
		{ErrCodeDiskFull, SeverityFatal},
		{ErrCodeInputNotFound, SeverityError},
		{ErrCodeNetworkTimeout, SeverityWarning},
		{ErrCodeInterrupted, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestWrap_CreatesErrorFromError(t *testing.T) {
	originalErr := errors.New("something went wrong")

	err := Wrap(ErrCodeInternal, originalErr)

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.Equal(t, "something went wrong", err.Message)
	assert.Equal(t, originalErr, err.Cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestConstructors_SetCategory(t *testing.T) {
	assert.Equal(t, CategoryConfig, ConfigError("bad yaml", nil).Category)
	assert.Equal(t, CategoryIO, IOError("cannot write", nil).Category)
	assert.Equal(t, CategoryNetwork, NetworkError("refused", nil).Category)
	assert.Equal(t, CategoryValidation, ValidationError("bad flag", nil).Category)
	assert.Equal(t, CategoryInternal, InternalError("boom", nil).Category)
}

func TestConstructors_Retryable(t *testing.T) {
	assert.True(t, NetworkError("refused", nil).Retryable)
	assert.True(t, New(ErrCodeNetworkTimeout, "timed out", nil).Retryable)
	assert.True(t, New(ErrCodeOutputLocked, "locked", nil).Retryable)
	assert.False(t, New(ErrCodeInputNotFound, "missing", nil).Retryable)
	assert.False(t, New(ErrCodeDiskFull, "no space left", nil).Retryable)
}

func TestAs_PlainErrorIsNotStructured(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
	assert.Empty(t, GetCode(errors.New("plain")))
}
