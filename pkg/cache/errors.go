package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable wraps every infrastructure failure of a remote backend.
// Callers treat it as a miss.
var ErrUnavailable = errors.New("cache unavailable")

// retryable marks an error as transient.
type retryable struct{ err error }

func (r *retryable) Error() string { return r.err.Error() }
func (r *retryable) Unwrap() error { return r.err }

// Retryable marks err as transient so [RetryWithBackoff] tries again.
// A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryable{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r *retryable
	return errors.As(err, &r)
}

// retryAttempts and retryDelay bound RetryWithBackoff: 3 calls with 200ms
// then 400ms pauses.
const retryAttempts = 3

var retryDelay = 200 * time.Millisecond

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or runs out of attempts. The pause doubles after each failure.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
