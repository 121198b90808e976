// Package cmd provides the CLI commands for scriptkit.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/scriptkit/internal/config"
	"github.com/Aman-CERP/scriptkit/internal/errors"
	"github.com/Aman-CERP/scriptkit/internal/logging"
	"github.com/Aman-CERP/scriptkit/internal/profiling"
	"github.com/Aman-CERP/scriptkit/internal/script"
	"github.com/Aman-CERP/scriptkit/pkg/version"
)

// skipSetup marks commands that run without loading config or logging.
const skipSetup = "scriptkit/skip-setup"

// exitError carries a non-zero exit code for a failure that was already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds state shared by every command of one invocation.
type app struct {
	logLevel string
	logFile  string
	profile  profiling.Config

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
	profiler *profiling.Session
}

// close stops profiling and releases the log file.
func (a *app) close() {
	if a.profiler != nil {
		if err := a.profiler.Stop(); err != nil && a.logger != nil {
			a.logger.Warn(fmt.Sprintf("Failed to write profiles: %v", err))
		}
		a.profiler = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
}

// setup loads configuration and builds the logger for cmd. Flags override
// config values only when they were set explicitly.
func (a *app) setup(cmd *cobra.Command, console io.Writer) error {
	if _, err := logging.ParseLevel(a.logLevel); err != nil {
		return errors.New(errors.ErrCodeInvalidLogLevel, fmt.Sprintf("invalid --log-level %q", a.logLevel), err).
			WithSuggestion("Use one of DEBUG, INFO, WARNING, ERROR")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.InternalError("cannot determine working directory", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err).
			WithSuggestion("Check " + config.ProjectFileName + " and SCRIPTKIT_* environment variables")
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = a.logFile
	}

	logger, closeLog, err := logging.Setup(cfg.LoggingOptions(), console)
	if err != nil {
		return errors.IOError("failed to set up logging", err).WithDetail("log_file", cfg.Logging.File)
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog

	if a.profile.Enabled() {
		session, err := profiling.Start(a.profile)
		if err != nil {
			return errors.IOError("failed to start profiling", err)
		}
		a.profiler = session
	}
	return nil
}

// NewRootCmd creates the root command for scriptkit CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	var opts script.Options
	var format string

	cmd := &cobra.Command{
		Use:   "scriptkit -i INPUT -o OUTPUT",
		Short: "Validated, logged, interruptible script skeleton",
		Long: `scriptkit validates an input and output path, processes the input into
a result record, and always cleans up after itself.

A directory input records its number of direct entries; a file input
records its size in bytes. The record is written as JSON (default) or YAML.

Exit codes:
  0    success
  1    failure, including invalid arguments
  130  interrupted (SIGINT/SIGTERM)`,
		Example: `  scriptkit -i /path/to/input -o /path/to/output.json
  scriptkit -i file.txt -o processed.json --force
  scriptkit -i data/ -o results.json --log-level DEBUG
  scriptkit -i data/ -o results.yaml --format yaml --log-file run.log`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runScript(cmd, a, opts, format)
		},
	}

	cmd.SetVersionTemplate("scriptkit {{.Version}}\n")

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Path to input file or directory")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path where output will be saved")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files without prompting")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml (default from config, else json)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "INFO", "Set logging level (DEBUG, INFO, WARNING, ERROR)")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Optional path to log file (appended, rotated by size)")
	cmd.PersistentFlags().StringVar(&a.profile.CPUPath, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.MemPath, "profile-mem", "", "Write memory profile to file on exit")
	cmd.PersistentFlags().StringVar(&a.profile.TracePath, "profile-trace", "", "Write execution trace to file")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.ValidationError(err.Error(), err).WithSuggestion("Run '" + c.CommandPath() + " --help' for usage")
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations[skipSetup] == "true" {
			return nil
		}
		console := cmd.OutOrStdout()
		if jsonFlag := cmd.Flags().Lookup("json"); jsonFlag != nil && jsonFlag.Value.String() == "true" {
			console = cmd.ErrOrStderr()
		}
		return a.setup(cmd, console)
	}

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runScript(cmd *cobra.Command, a *app, opts script.Options, format string) error {
	if format == "" {
		format = a.cfg.Output.Format
	}
	f, err := script.ParseFormat(format)
	if err != nil {
		return err
	}
	opts.Format = f
	opts.LogLevel = a.cfg.Logging.Level
	opts.LogFile = a.cfg.Logging.File

	if code := script.Run(cmd.Context(), opts, a.logger); code != script.ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// Execute runs the CLI with OS arguments and signal handling, returning the
// process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// ExecuteContext runs the CLI with explicit arguments and streams.
func ExecuteContext(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return script.ExitSuccess
	}

	var exit *exitError
	if stderrors.As(err, &exit) {
		return exit.code
	}

	if _, ok := errors.As(err); ok {
		_, _ = fmt.Fprint(stderr, errors.FormatForCLI(err))
	} else {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return script.ExitFailure
}
