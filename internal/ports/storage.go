package ports

// Package ports defines interfaces (hexagonal ports) for session persistence
// and backend access. Implementations live in internal/adapters; orchestration
// in internal/service.

import (
	"context"
	"time"
)

// Storage persists string keys grouped by browser scope. Implementations must
// apply each Store and Remove call atomically for the keys involved.
type Storage interface {
	// Load returns the subset of keys present for scope. Missing keys are
	// absent from the map; a missing scope yields an empty map and no error.
	Load(ctx context.Context, scope string, keys ...string) (map[string]string, error)

	// Store writes every value for scope. A positive ttl bounds how long the
	// scope survives.
	Store(ctx context.Context, scope string, values map[string]string, ttl time.Duration) error

	// Remove deletes keys from scope. Removing absent keys is not an error.
	Remove(ctx context.Context, scope string, keys ...string) error
}

// BrowserStorage is one browser's view of Storage. Both the session and the
// request pipeline read through it, so it is the single source of truth for
// the persisted credential.
type BrowserStorage interface {
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	SetAll(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}
