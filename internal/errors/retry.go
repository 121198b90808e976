package errors

import (
	"context"
	"time"
)

// RetryConfig configures Retry.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the wait between retries.
	MaxDelay time.Duration

	// Multiplier grows the wait after each retry.
	Multiplier float64
}

// DefaultRetryConfig returns a single-attempt config with backoff settings
// suited to short network probes.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   0,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     4 * time.Second,
		Multiplier:   2.0,
	}
}

// Retry calls fn until it succeeds, the retries are used up, or fn returns
// an *Error that is not Retryable. fn receives the zero-based attempt number.
// The last error from fn is returned unchanged. Cancelling ctx stops waiting
// between attempts; if ctx is already done before the first attempt,
// ctx.Err() is returned.
func Retry(ctx context.Context, cfg RetryConfig, fn func(attempt int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := cfg.InitialDelay
	for attempt := 0; ; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if attempt >= cfg.MaxRetries {
			return err
		}
		if e, ok := As(err); ok && !e.Retryable {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		delay = nextDelay(delay, cfg)
	}
}

func nextDelay(d time.Duration, cfg RetryConfig) time.Duration {
	if cfg.Multiplier > 1 {
		d = time.Duration(float64(d) * cfg.Multiplier)
	}
	if cfg.MaxDelay > 0 && d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}
