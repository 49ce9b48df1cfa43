package services

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/logger"
)

// DefaultMaxRetries is the bounded retry count for external API calls.
// Only transient failures are retried; validation errors surface
// immediately.
const DefaultMaxRetries = 2

// DefaultRetryDelay is the initial backoff, doubled on each retry.
const DefaultRetryDelay = 500 * time.Millisecond

// withRetry calls fn up to maxRetries+1 times, doubling the delay
// between attempts. Non-transient errors and context cancellation stop
// retrying immediately.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = DefaultRetryDelay
	}

	var err error
	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || !isTransient(err) {
			return err
		}

		logger.Warn("attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// isTransient reports whether an error is worth retrying: network-level
// failures, timeouts and rate limiting. Anything the service rejected
// outright (bad request, auth) is permanent.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var transient interface{ Transient() bool }
	if errors.As(err, &transient) {
		return transient.Transient()
	}
	return false
}
