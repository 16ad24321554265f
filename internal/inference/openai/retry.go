package openai

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	// Retry on empty bodies as they might be due to incomplete responses
	return strings.Contains(errStr, "empty response")
}

// withRetry runs call until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is done.
func (client *Client) withRetry(ctx context.Context, providerName string, call func(ctx context.Context) error) error {
	return retry.Do(
		func() error {
			err := call(ctx)
			if err != nil && (ctx.Err() != nil || !isRetryableError(err)) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			client.logger.Info("Retrying LLM API call",
				"provider", providerName,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}
