package rpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 200 * time.Millisecond
)

// retryBridge wraps a Bridge with the command error policy: transient
// failures are retried with exponential backoff, probe-style commands and
// user cancellation never surface errors.
type retryBridge struct {
	next        Bridge
	maxAttempts int
	baseDelay   time.Duration
}

// WithRetry decorates a Bridge with retry and suppression policy.
func WithRetry(next Bridge) Bridge {
	return &retryBridge{
		next:        next,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

func (b *retryBridge) Call(ctx context.Context, method string, args, result any) error {
	var err error

	delay := b.baseDelay
	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		err = b.next.Call(ctx, method, args, result)
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt == b.maxAttempts {
			break
		}

		slog.Warn("retrying backend command", "method", method, "attempt", attempt, "error", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}

	if isProbe(method) || isCancelled(err) {
		slog.Debug("suppressing backend command error", "method", method, "error", err)
		return nil
	}
	return err
}

// isTransient reports whether the backend failure is worth retrying. The
// backend does not tag retryability, so this matches the known transient
// message substrings.
func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "busy") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "locked")
}

// isProbe reports whether a command is a probe-style check whose failure
// should read as a negative answer rather than an error.
func isProbe(method string) bool {
	return strings.HasPrefix(method, "is_") || strings.HasPrefix(method, "check_")
}

func isCancelled(err error) bool {
	var rpcErr *Error
	return errors.As(err, &rpcErr) && rpcErr.Code == CodeCancelled
}
