package service

import (
	"context"
	"time"

	"github.com/target/storefront-admin/internal/ports"
)

// BrowserStorage is the ports.BrowserStorage of a single browser scope.
type BrowserStorage struct {
	backend ports.Storage
	scope   string
	ttl     TTLFunc
}

var _ ports.BrowserStorage = (*BrowserStorage)(nil)

// NewBrowserStorage returns the view of scope on backend. ttl may be nil.
func NewBrowserStorage(backend ports.Storage, scope string, ttl TTLFunc) *BrowserStorage {
	return &BrowserStorage{backend: backend, scope: scope, ttl: ttl}
}

// Scope returns the browser scope identifier.
func (s *BrowserStorage) Scope() string { return s.scope }

func (s *BrowserStorage) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	return s.backend.Load(ctx, s.scope, keys...)
}

func (s *BrowserStorage) SetAll(ctx context.Context, values map[string]string) error {
	var ttl time.Duration
	if s.ttl != nil {
		ttl = s.ttl(values)
	}
	return s.backend.Store(ctx, s.scope, values, ttl)
}

func (s *BrowserStorage) Remove(ctx context.Context, keys ...string) error {
	return s.backend.Remove(ctx, s.scope, keys...)
}
