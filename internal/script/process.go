package script

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

// StatusSuccess is the status recorded for a completed run.
const StatusSuccess = "success"

// Details describes what was found at the input path.
type Details struct {
	// Type is "directory" or "file".
	Type  string `json:"type" yaml:"type"`
	Items *int   `json:"items,omitempty" yaml:"items,omitempty"`
	Size  *int64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// Result is the record written to the output path.
type Result struct {
	ProcessedAt string  `json:"processed_at" yaml:"processed_at"`
	InputPath   string  `json:"input_path" yaml:"input_path"`
	OutputPath  string  `json:"output_path" yaml:"output_path"`
	Status      string  `json:"status" yaml:"status"`
	Details     Details `json:"details" yaml:"details"`
	RunID       string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// Processor turns an input path into a Result and writes it to the output.
type Processor struct {
	Logger *slog.Logger
	Format Format
	RunID  string
	// Now defaults to time.Now.
	Now func() time.Time
}

// ProcessData processes input into a JSON record at output.
func ProcessData(ctx context.Context, input, output string, logger *slog.Logger) (*Result, error) {
	p := &Processor{Logger: logger, Format: FormatJSON}
	return p.Process(ctx, input, output)
}

// Process inspects input, writes the encoded Result to output and returns it.
// A directory reports its number of direct entries, a file its size in bytes.
// Cancellation of ctx is honored between steps.
func (p *Processor) Process(ctx context.Context, input, output string) (*Result, error) {
	logger := p.Logger
	logger.Info(fmt.Sprintf("Starting processing of: %s", input))

	if err := interrupted(ctx); err != nil {
		return nil, err
	}

	details, err := p.inspect(input)
	if err != nil {
		return nil, p.failed(ctx, err)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	result := &Result{
		ProcessedAt: now().UTC().Format(time.RFC3339),
		InputPath:   input,
		OutputPath:  output,
		Status:      StatusSuccess,
		Details:     details,
		RunID:       p.RunID,
	}

	data, err := encode(result, p.Format)
	if err != nil {
		return nil, p.failed(ctx, errors.InternalError("failed to encode result", err))
	}

	if err := interrupted(ctx); err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return nil, p.failed(ctx, writeError(output, err))
	}

	logger.Info(fmt.Sprintf("Output saved to: %s", output))
	logger.Info("Processing completed successfully")
	return result, nil
}

func (p *Processor) inspect(input string) (Details, error) {
	info, err := os.Stat(input)
	if err != nil {
		return Details{}, errors.New(errors.ErrCodeInputNotFound, "cannot stat input: "+input, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return Details{}, errors.New(errors.ErrCodeFilePermission, "cannot read input directory: "+input, err)
		}
		items := len(entries)
		p.Logger.Info(fmt.Sprintf("Processing directory with %d items", items))
		return Details{Type: "directory", Items: &items}, nil
	}

	size := info.Size()
	p.Logger.Info(fmt.Sprintf("Processing file of size %d bytes", size))
	return Details{Type: "file", Size: &size}, nil
}

// failed logs err and wraps it as a processing failure.
func (p *Processor) failed(ctx context.Context, err error) error {
	p.Logger.Error(fmt.Sprintf("Error in processing: %v", err))
	p.Logger.LogAttrs(ctx, slog.LevelDebug, "processing failure detail", errors.FormatForLog(err)...)
	return errors.New(errors.ErrCodeProcessingFailed, "processing failed", err)
}

// writeError reports a failed output write; a full disk is fatal.
func writeError(output string, err error) *errors.Error {
	if stderrors.Is(err, syscall.ENOSPC) {
		return errors.New(errors.ErrCodeDiskFull, "no space left to write output: "+output, err).
			WithDetail("path", output).
			WithSuggestion("Free disk space or choose an output on another filesystem")
	}
	return errors.IOError("failed to write output: "+output, err).WithDetail("path", output)
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.New(errors.ErrCodeInterrupted, "interrupted", err)
	}
	return nil
}

// encode renders r as UTF-8 without HTML escaping.
func encode(r *Result, format Format) ([]byte, error) {
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
