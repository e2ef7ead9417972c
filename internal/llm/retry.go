package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryClient is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic. A MaxAttempts below 1 is treated as 1.
func WithRetry(c Client, cfg RetryConfig) *RetryClient {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryClient{inner: c, config: cfg}
}

// GenerateContent retries the inner client's GenerateContent.
func (r *RetryClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return r.do(ctx, func() (string, error) { return r.inner.GenerateContent(ctx, prompt, tier) })
}

// GenerateJSON retries the inner client's GenerateJSON.
func (r *RetryClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return r.do(ctx, func() (string, error) { return r.inner.GenerateJSON(ctx, prompt, tier) })
}

// GetModel returns the inner client's model for a tier.
func (r *RetryClient) GetModel(tier ModelTier) string {
	return r.inner.GetModel(tier)
}

// Close closes the inner client.
func (r *RetryClient) Close() error {
	return r.inner.Close()
}

func (r *RetryClient) do(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return "", err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	return "", lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	return errors.As(err, &rl) || errors.As(err, &unavail)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryClient) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
