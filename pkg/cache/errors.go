package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend that could not be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff is a retry policy with a doubling delay between attempts.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// defaultBackoff is used by the redis cache. Tests shorten Delay.
var defaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Retry calls fn until it succeeds, fails with an error that is not
// retryable, or runs out of attempts. It returns early when ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff retries fn with the default policy of three attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultBackoff.Retry(ctx, fn)
}
