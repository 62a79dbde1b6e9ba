package store

import (
	"context"
	"strings"
	"time"
)

const (
	retryAttempts = 3
	retryDelay    = 50 * time.Millisecond
)

// isSQLiteConflictError checks if the error is a SQLITE_BUSY or
// "database is locked" error. These are both SQLite concurrency errors
// that typically warrant retry logic.
func isSQLiteConflictError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// withRetry runs fn, retrying a handful of times on SQLite concurrency
// errors. Other errors are returned immediately.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); !isSQLiteConflictError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return err
}
