// pkg/db/retry.go
package db

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

const (
	baseDelay = 10 * time.Millisecond
	maxDelay  = 1 * time.Second
)

// Postgres error classes that are safe to retry: the statement failed for
// reasons of timing, not of state.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqConnectionFailure    = "08006"
)

// IsTransient reports whether err is a store-level failure worth retrying:
// serialization conflicts, deadlocks, and lost connections.
func IsTransient(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqSerializationFailure, pqDeadlockDetected, pqConnectionFailure:
		return true
	}
	return false
}

// Backoff returns the exponential backoff delay for the given attempt,
// starting at baseDelay and capped at maxDelay.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		return baseDelay
	}
	if attempt > 30 {
		return maxDelay
	}
	d := baseDelay * time.Duration(1<<attempt)
	if d > maxDelay {
		return maxDelay
	}
	return d
}

// Retry runs fn up to attempts times, sleeping with exponential backoff
// between tries. Only transient errors are retried; anything else is
// returned to the caller immediately. The context aborts the wait.
func Retry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		select {
		case <-time.After(Backoff(i)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
