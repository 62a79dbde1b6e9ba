// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// Repository defines the interface for persisting login records and
// terminal command history.
type Repository interface {
	// LastLogin retrieves the single last-login record, or nil if no
	// login has ever been saved.
	LastLogin(ctx context.Context) (*domain.LoginRecord, error)

	// SaveLogin overwrites the last-login record.
	SaveLogin(ctx context.Context, rec *domain.LoginRecord) error

	// LoadHistory retrieves the command history stored under key.
	// A key that was never saved returns an empty slice.
	LoadHistory(ctx context.Context, key string) ([]string, error)

	// SaveHistory stores the command history under key, replacing any
	// previous value.
	SaveHistory(ctx context.Context, key string, entries []string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
