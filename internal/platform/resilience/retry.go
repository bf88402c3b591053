package resilience

import (
	"context"
	"time"
)

// RetryPolicy retries with linear backoff: attempt n waits n*Backoff.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
	Retryable  func(error) bool
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// retries are spent. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if (p.Retryable != nil && !p.Retryable(err)) || attempt == p.MaxRetries {
			return err
		}

		timer := time.NewTimer(time.Duration(attempt+1) * p.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
