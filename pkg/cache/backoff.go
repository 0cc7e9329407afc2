package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// transientError marks a failure that may clear up on its own, such as a
// refused or timed-out connection to a Redis server that is still starting.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth another attempt by [Backoff.Retry]. A nil
// err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err, or an error it wraps, was marked with
// [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// transientNet marks network-level failures as transient and leaves
// protocol errors (bad password, unknown command) alone.
func transientNet(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Transient(err)
	}
	return err
}

// Backoff retries an operation with a doubling delay between attempts.
type Backoff struct {
	// Attempts is the total number of calls, at least one.
	Attempts int
	// Delay is the wait before the second attempt.
	Delay time.Duration
}

// connectBackoff covers the Redis PING at startup.
var connectBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// Retry calls fn until it succeeds or fails with an error not marked
// [Transient]. After the last attempt the last error is returned; if ctx
// ends while waiting, ctx.Err() is.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(1, b.Attempts) {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			delay *= 2
		}
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
	}
	return err
}
