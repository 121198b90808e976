package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/scriptkit/internal/errors"
	"github.com/Aman-CERP/scriptkit/internal/output"
	"github.com/Aman-CERP/scriptkit/internal/preflight"
)

type validateOptions struct {
	minGo      string
	commands   []string
	modules    []string
	osList     []string
	host       string
	port       int
	timeout    time.Duration
	retries    int
	minDiskGB  float64
	jsonOutput bool
	verbose    bool
	stateDir   string
	maxAge     time.Duration

	prompt        string
	promptTimeout time.Duration
	promptDefault string
}

func newValidateCmd(a *app) *cobra.Command {
	var o validateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that this machine can run the script",
		Long: `Run the environment checks and report a failure count.

Checks, in order:
  - Go runtime version (--min-go)
  - Operating system (--os, skipped when empty)
  - Commands on PATH (--command, repeatable)
  - Modules linked into this binary (--module, repeatable)
  - Working directory exists and is writable
  - Network reachability of --host:--port (warning only, retried
    --network-retries times)
  - Free disk space in the working directory (--min-disk-gb)

Defaults come from the validate section of .scriptkit.yaml.
Exit code is 0 when no check failed, 1 otherwise.`,
		Example: `  # Run with configured requirements
  scriptkit validate

  # Require git and make, with a custom network probe
  scriptkit validate --command git --command make --host proxy.internal --port 3128

  # Ask before continuing; unattended runs answer "n" after 10s
  scriptkit validate --prompt "Continue? (y/N)" --prompt-timeout 10s

  # JSON output for scripting
  scriptkit validate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runValidate(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.minGo, "min-go", "", "Minimum Go version as major.minor (default from config, else 1.21)")
	f.StringArrayVar(&o.commands, "command", nil, "Command that must be on PATH (repeatable)")
	f.StringArrayVar(&o.modules, "module", nil, "Module path that must be linked into the binary (repeatable)")
	f.StringArrayVar(&o.osList, "os", nil, "Supported operating system, matched against GOOS (repeatable)")
	f.StringVar(&o.host, "host", "", "Network probe host (default from config, else github.com)")
	f.IntVar(&o.port, "port", 0, "Network probe port (default from config, else 443)")
	f.DurationVar(&o.timeout, "timeout", 0, "Network probe timeout (default from config, else 5s)")
	f.IntVar(&o.retries, "network-retries", 0, "Extra network probe attempts after a failure (default from config, else 0)")
	f.Float64Var(&o.minDiskGB, "min-disk-gb", 0, "Minimum free disk space in GB (default from config, else 0.1)")
	f.BoolVar(&o.jsonOutput, "json", false, "Output results as JSON; logs and prompts go to stderr")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Show check details")
	f.StringVar(&o.stateDir, "state-dir", "", "Directory that remembers the last passing run")
	f.DurationVar(&o.maxAge, "max-age", 0, "Skip validation if it passed within this long (needs --state-dir)")
	f.StringVar(&o.prompt, "prompt", "", "Ask this question after a passing validation")
	f.DurationVar(&o.promptTimeout, "prompt-timeout", 10*time.Second, "How long to wait for an answer")
	f.StringVar(&o.promptDefault, "prompt-default", "n", "Answer used when nobody responds")

	return cmd
}

// requirements merges configured defaults with explicitly set flags.
func (o validateOptions) requirements(cmd *cobra.Command, a *app) (preflight.Requirements, error) {
	vc := a.cfg.Validate
	flags := cmd.Flags()

	minGo := vc.MinGoVersion
	if flags.Changed("min-go") {
		minGo = o.minGo
	}
	minVersion, err := preflight.ParseVersion(minGo)
	if err != nil {
		return preflight.Requirements{}, errors.ValidationError("invalid minimum Go version", err).
			WithSuggestion("Use major.minor, e.g. --min-go 1.21")
	}

	req := preflight.Requirements{
		MinGoVersion:   minVersion,
		SupportedOS:    vc.SupportedOS,
		Commands:       vc.Commands,
		Modules:        vc.Modules,
		NetworkHost:    vc.Network.Host,
		NetworkPort:    vc.Network.Port,
		NetworkTimeout: a.cfg.NetworkTimeout(),
		MinDiskGB:      vc.MinDiskGB,
	}

	if flags.Changed("os") {
		req.SupportedOS = o.osList
	}
	if flags.Changed("command") {
		req.Commands = o.commands
	}
	if flags.Changed("module") {
		req.Modules = o.modules
	}
	if flags.Changed("host") {
		req.NetworkHost = o.host
	}
	if flags.Changed("port") {
		if o.port <= 0 || o.port > 65535 {
			return req, errors.ValidationError(fmt.Sprintf("invalid --port %d", o.port), nil)
		}
		req.NetworkPort = o.port
	}
	if flags.Changed("timeout") {
		req.NetworkTimeout = o.timeout
	}
	if flags.Changed("min-disk-gb") {
		if o.minDiskGB < 0 {
			return req, errors.ValidationError("--min-disk-gb must not be negative", nil)
		}
		req.MinDiskGB = o.minDiskGB
	}

	wd, err := os.Getwd()
	if err != nil {
		return req, errors.InternalError("cannot determine working directory", err)
	}
	req.WorkDir = wd

	return req, nil
}

func runValidate(cmd *cobra.Command, a *app, o validateOptions) error {
	// With --json stdout carries only the JSON document.
	human := cmd.OutOrStdout()
	if o.jsonOutput {
		human = cmd.ErrOrStderr()
	}
	out := output.New(human)

	if o.promptTimeout < 0 {
		return errors.ValidationError("--prompt-timeout must not be negative", nil)
	}

	if o.stateDir != "" && o.maxAge > 0 && !preflight.NeedsCheck(o.stateDir, o.maxAge) {
		out.Successf("Validation passed %s ago, skipping", preflight.MarkerAge(o.stateDir).Round(time.Second))
		if o.jsonOutput {
			return encodeJSON(cmd, validateJSON{Status: "skipped", Passed: true, Checks: []preflight.CheckResult{}})
		}
		return nil
	}

	req, err := o.requirements(cmd, a)
	if err != nil {
		return err
	}

	retries := a.cfg.Validate.Network.Retries
	if cmd.Flags().Changed("network-retries") {
		if o.retries < 0 {
			return errors.ValidationError("--network-retries must not be negative", nil)
		}
		retries = o.retries
	}

	v := preflight.New(
		preflight.WithLogger(a.logger),
		preflight.WithNetworkRetries(retries),
		preflight.WithOutput(human),
		preflight.WithInput(cmd.InOrStdin()),
		preflight.WithVerbose(o.verbose),
	)

	passed := v.ValidateSystem(cmd.Context(), req)
	results := v.Results()

	if o.jsonOutput {
		if err := writeValidateJSON(cmd, v, passed, results); err != nil {
			return err
		}
	} else {
		out.Newline()
		v.PrintResults(results)
	}

	if o.stateDir != "" {
		if passed {
			err = preflight.MarkPassed(o.stateDir)
		} else {
			err = preflight.ClearMarker(o.stateDir)
		}
		if err != nil {
			a.logger.Warn(fmt.Sprintf("Could not update validation marker: %v", err))
		}
	}

	if !passed {
		if !o.jsonOutput {
			out.Newline()
			out.Errorf("System validation failed with %d errors", v.Errors())
		}
		return &exitError{code: 1}
	}

	if o.prompt == "" {
		return nil
	}

	out.Newline()
	answer := v.PromptWithTimeout(cmd.Context(), o.prompt, o.promptTimeout, o.promptDefault)
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		out.Plain("Operation cancelled")
		return nil
	}
	out.Success("Validation passed! Script can continue...")
	return nil
}

// validateJSON is the structure for JSON output.
type validateJSON struct {
	Status     string                  `json:"status"`
	Passed     bool                    `json:"passed"`
	Errors     int                     `json:"errors"`
	Checks     []preflight.CheckResult `json:"checks"`
	SystemInfo preflight.SystemInfo    `json:"system_info"`
}

func writeValidateJSON(cmd *cobra.Command, v *preflight.Validator, passed bool, results []preflight.CheckResult) error {
	doc := validateJSON{
		Status:     preflight.SummaryStatus(results),
		Passed:     passed,
		Errors:     v.Errors(),
		Checks:     results,
		SystemInfo: v.GatherSystemInfo(),
	}

	return encodeJSON(cmd, doc)
}

func encodeJSON(cmd *cobra.Command, doc validateJSON) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
