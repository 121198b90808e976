package script

import (
	"strings"

	"github.com/Aman-CERP/scriptkit/internal/errors"
	"github.com/Aman-CERP/scriptkit/internal/logging"
)

// Format selects how the result record is encoded.
type Format string

const (
	// FormatJSON writes 2-space indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" or "yaml" in any case. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: "+s, nil).
			WithSuggestion("Use --format json or --format yaml")
	}
}

// Options is the parsed command line of one skeleton run.
type Options struct {
	Input    string
	Output   string
	Force    bool
	LogLevel string
	LogFile  string
	Format   Format
}

// Validate checks the options before any file is touched.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Input) == "" {
		return errors.ValidationError("input path is required", nil).WithSuggestion("Pass -i/--input")
	}
	if strings.TrimSpace(o.Output) == "" {
		return errors.ValidationError("output path is required", nil).WithSuggestion("Pass -o/--output")
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return errors.New(errors.ErrCodeInvalidLogLevel, err.Error(), nil).
			WithSuggestion("Use one of DEBUG, INFO, WARNING, ERROR")
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}
