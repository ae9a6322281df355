// Package retry re-runs idempotent backend reads after transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amishk599/cvcoach/internal/model"
)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	MaxRetries int           // additional attempts after the first; 0 disables retrying
	BaseDelay  time.Duration // delay before the first retry, doubled each time
}

// Do runs op and retries it under p while the error is transient: 429
// (honouring Retry-After), 5xx or a transport failure. op must be safe to
// repeat; uploads never go through here.
func Do[T any](ctx context.Context, p Policy, logger *slog.Logger, name string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= p.MaxRetries || !isRetryable(err) {
			return zero, err
		}

		delay := p.backoffDelay(attempt+1, err)
		logger.Warn("retrying after transient error",
			"op", name,
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry %s cancelled: %w", name, ctx.Err())
		case <-time.After(delay):
		}
	}
}

// RetrySearcher retries job searches, which are plain GETs.
type RetrySearcher struct {
	inner  model.JobSearcher
	policy Policy
	logger *slog.Logger
}

// NewRetrySearcher wraps a JobSearcher with retry logic.
func NewRetrySearcher(inner model.JobSearcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetrySearcher {
	return &RetrySearcher{
		inner:  inner,
		policy: Policy{MaxRetries: maxRetries, BaseDelay: baseDelay},
		logger: logger,
	}
}

func (s *RetrySearcher) SearchJobs(ctx context.Context, kind model.SearchKind) ([]model.JobListing, error) {
	return Do(ctx, s.policy, s.logger, "search "+string(kind)+" jobs", func(ctx context.Context) ([]model.JobListing, error) {
		return s.inner.SearchJobs(ctx, kind)
	})
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After from the server takes precedence.
func (p Policy) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := p.BaseDelay << (attempt - 1)
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}
	// Network, DNS, decode.
	return true
}
