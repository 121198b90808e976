package preflight

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

// DefaultNetworkTimeout bounds each CheckNetwork attempt when no timeout is given.
const DefaultNetworkTimeout = 5 * time.Second

// CheckNetwork checks that a TCP connection to host:port can be opened within
// timeout, retrying with backoff as configured by WithNetworkRetries.
// Unknown hosts are not retried. Failure is logged as a warning and never
// counted in Errors; the result's Details carry the error code.
func (v *Validator) CheckNetwork(ctx context.Context, host string, port int, timeout time.Duration) bool {
	const name = "network"
	if timeout <= 0 {
		timeout = DefaultNetworkTimeout
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: timeout}

	err := errors.Retry(ctx, v.netRetry, func(attempt int) error {
		if attempt > 0 {
			v.logger.Debug(fmt.Sprintf("Retrying network connectivity test for %s (attempt %d)", addr, attempt+1))
		}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return dialError(addr, err)
		}
		return conn.Close()
	})
	if err != nil {
		reason := err
		if e, ok := errors.As(err); ok && e.Cause != nil {
			reason = e.Cause
		}
		v.warn(name, fmt.Sprintf("Network connectivity test failed for %s - %v", addr, reason), errors.GetCode(err), false)
		return false
	}

	return v.pass(name, fmt.Sprintf("Network connectivity validated: %s", addr), "")
}

// dialError classifies a failed dial to addr.
func dialError(addr string, err error) error {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return errors.New(errors.ErrCodeInvalidInput, "unknown host: "+addr, err).
			WithSuggestion("Check --host or validate.network.host")
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.New(errors.ErrCodeNetworkTimeout, "timed out connecting to "+addr, err)
	}

	return errors.NetworkError("cannot connect to "+addr, err)
}
