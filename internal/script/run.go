package script

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

// Exit codes returned by Run.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// Run executes one skeleton run and returns its exit code. Cleanup runs
// whether the run succeeds, fails, or is interrupted through ctx.
func Run(ctx context.Context, opts Options, logger *slog.Logger) int {
	runID := ulid.Make().String()
	logger = logger.With(slog.String("run_id", runID))

	cleanup := NewCleanup(logger)
	defer cleanup.Run()

	logger.Info("=== Script Started ===")
	logger.Info(fmt.Sprintf("Input: %s", opts.Input))
	logger.Info(fmt.Sprintf("Output: %s", opts.Output))
	logger.Info(fmt.Sprintf("Force: %t", opts.Force))

	err := execute(ctx, opts, runID, logger, cleanup)
	switch {
	case err == nil:
		logger.Info("=== Script Completed Successfully ===")
		return ExitSuccess
	case isInterrupt(err):
		logger.Warn("Script interrupted by user")
		return ExitInterrupted
	default:
		logger.Error("=== Script Failed ===")
		logger.LogAttrs(ctx, slog.LevelError, fmt.Sprintf("Error: %v", err), errors.FormatForLog(err)...)
		return ExitFailure
	}
}

func execute(ctx context.Context, opts Options, runID string, logger *slog.Logger, cleanup *Cleanup) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := interrupted(ctx); err != nil {
		return err
	}

	if err := ValidateInputs(opts.Input, opts.Output, opts.Force); err != nil {
		return err
	}
	logger.Info("Input validation completed successfully")

	lock, err := LockOutput(opts.Output, opts.Force)
	if err != nil {
		return err
	}
	cleanup.Add("output lock", lock.Release)

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return err
	}

	p := &Processor{Logger: logger, Format: format, RunID: runID}
	_, err = p.Process(ctx, opts.Input, opts.Output)
	return err
}

func isInterrupt(err error) bool {
	return stderrors.Is(err, context.Canceled) || errors.GetCode(err) == errors.ErrCodeInterrupted
}
