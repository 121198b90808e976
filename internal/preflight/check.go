package preflight

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Aman-CERP/scriptkit/internal/errors"
	"github.com/Aman-CERP/scriptkit/internal/logging"
	"github.com/Aman-CERP/scriptkit/internal/output"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the status as PASS/WARN/FAIL in JSON and YAML.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Validator runs environment checks and counts the ones that failed.
// It is not safe for concurrent use.
type Validator struct {
	logger  *slog.Logger
	output  io.Writer
	input   io.Reader
	verbose bool

	lookPath  func(string) (string, error)
	modules   func() []string
	goVersion func() string
	goos      string
	diskFree  func(string) (uint64, error)
	netRetry  errors.RetryConfig

	errors  int
	results []CheckResult

	reader  *bufio.Reader
	pending chan lineResult
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger checks report to. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithOutput sets where prompts and printed results go.
func WithOutput(w io.Writer) Option {
	return func(v *Validator) {
		v.output = w
	}
}

// WithInput sets where prompt answers are read from.
func WithInput(r io.Reader) Option {
	return func(v *Validator) {
		v.input = r
	}
}

// WithVerbose enables check details in PrintResults.
func WithVerbose(verbose bool) Option {
	return func(v *Validator) {
		v.verbose = verbose
	}
}

// WithModuleResolver replaces the source of linked module paths.
func WithModuleResolver(fn func() []string) Option {
	return func(v *Validator) {
		v.modules = fn
	}
}

// WithLookPath replaces exec.LookPath for command checks.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(v *Validator) {
		v.lookPath = fn
	}
}

// WithNetworkRetries sets how many times a failed network probe is retried.
func WithNetworkRetries(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.netRetry.MaxRetries = n
		}
	}
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:    logging.Discard(),
		output:    os.Stdout,
		input:     os.Stdin,
		lookPath:  exec.LookPath,
		modules:   linkedModules,
		goVersion: runtime.Version,
		goos:      runtime.GOOS,
		diskFree:  availableBytes,
		netRetry:  errors.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Errors returns the number of failed checks so far.
func (v *Validator) Errors() int {
	return v.errors
}

// Results returns a copy of every check result recorded so far, in order.
func (v *Validator) Results() []CheckResult {
	out := make([]CheckResult, len(v.results))
	copy(out, v.results)
	return out
}

func (v *Validator) pass(name, msg, details string) bool {
	v.logger.Info(msg)
	v.results = append(v.results, CheckResult{Name: name, Status: StatusPass, Message: msg, Details: details, Required: true})
	return true
}

// warn records an outcome that never counts toward Errors.
func (v *Validator) warn(name, msg, details string, required bool) {
	v.logger.Warn(msg)
	v.results = append(v.results, CheckResult{Name: name, Status: StatusWarn, Message: msg, Details: details, Required: required})
}

func (v *Validator) fail(name, msg, details string) bool {
	v.errors++
	v.logger.Error(msg)
	v.results = append(v.results, CheckResult{Name: name, Status: StatusFail, Message: msg, Details: details, Required: true})
	return false
}

// SummaryStatus returns a summary status string for the results.
func SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	hasCriticalFailure := false

	for _, r := range results {
		if r.IsCritical() {
			hasCriticalFailure = true
		}
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			hasWarnings = true
		}
	}

	if hasCriticalFailure {
		return "failed"
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints check results to the configured output.
func (v *Validator) PrintResults(results []CheckResult) {
	out := output.New(v.output)
	out.Header("System Validation")

	for _, r := range results {
		out.Check(r.Status.String(), r.Name, r.Message)
		if v.verbose && r.Details != "" {
			out.Detail(r.Details)
		}
	}

	out.Newline()
	out.Plain("Status: " + strings.ToUpper(SummaryStatus(results)))

	var warnings, errs []string
	for _, r := range results {
		if r.IsCritical() {
			errs = append(errs, r.Name+": "+r.Message)
		} else if r.Status == StatusWarn {
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	if len(errs) > 0 {
		out.Newline()
		out.Plain(fmt.Sprintf("%d error(s):", len(errs)))
		for _, e := range errs {
			out.Plain("  - " + e)
		}
	}

	if len(warnings) > 0 {
		out.Newline()
		out.Plain(fmt.Sprintf("%d warning(s):", len(warnings)))
		for _, w := range warnings {
			out.Plain("  - " + w)
		}
	}
}
