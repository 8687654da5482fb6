// Rate limiting and retry handling for provider HTTP calls.
package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/desertthunder/setlist/internal/shared"
	"golang.org/x/time/rate"
)

// defaultRetryDelay is the wait before retrying a rate-limited request when
// the provider does not send a Retry-After header.
const defaultRetryDelay = 5 * time.Second

// retryPolicy paces outgoing requests and retries rate-limited ones.
//
// A 429 response is retried after the provider's Retry-After delay (or
// defaultRetryDelay when absent), up to maxAttempts total attempts. The
// attempt counter is a hard cap so a persistently overloaded provider
// surfaces [shared.ErrRateLimited] instead of blocking forever.
type retryPolicy struct {
	limiter      *rate.Limiter
	maxAttempts  int
	defaultDelay time.Duration
}

func newRetryPolicy(requestsPerSecond float64, maxAttempts int) *retryPolicy {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryPolicy{
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		maxAttempts:  maxAttempts,
		defaultDelay: defaultRetryDelay,
	}
}

// do runs fn under the rate limiter. Transport errors are returned as-is;
// 429 responses are drained and retried.
func (p *retryPolicy) do(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		delay := retryAfter(resp, p.defaultDelay)
		resp.Body.Close()

		if attempt == p.maxAttempts {
			break
		}
		if err := sleepWithContext(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts", shared.ErrRateLimited, p.maxAttempts)
}

// retryAfter reads the provider-specified delay from a 429 response.
func retryAfter(resp *http.Response, fallback time.Duration) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return fallback
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// sleepWithContext blocks for d or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
