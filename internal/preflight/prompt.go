package preflight

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

type lineResult struct {
	line string
	err  error
}

// PromptWithTimeout writes prompt and waits up to timeout for one line of
// input. It returns def when the timeout expires, ctx is cancelled, or the
// input ends. A line that arrives in time is returned as typed, without its
// line ending.
//
// A read still outstanding when the prompt gives up is reused by the next
// prompt, so at most one reader goroutine exists per Validator.
func (v *Validator) PromptWithTimeout(ctx context.Context, prompt string, timeout time.Duration, def string) string {
	secs := int(math.Ceil(timeout.Seconds()))
	_, _ = fmt.Fprintf(v.output, "%s (auto-continues in %ds): ", prompt, secs)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-v.readLine():
		v.pending = nil
		if r.err == nil || r.line != "" {
			return strings.TrimRight(r.line, "\r\n")
		}
	case <-timer.C:
	case <-ctx.Done():
	}

	_, _ = fmt.Fprintln(v.output)
	v.logger.Warn(fmt.Sprintf("No input detected, using default: %s", def))
	return def
}

func (v *Validator) readLine() <-chan lineResult {
	if v.pending != nil {
		return v.pending
	}
	if v.reader == nil {
		v.reader = bufio.NewReader(v.input)
	}

	ch := make(chan lineResult, 1)
	r := v.reader
	go func() {
		line, err := r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	v.pending = ch
	return ch
}
