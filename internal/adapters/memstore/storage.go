// Package memstore keeps browser storage in process memory. It suits tests
// and single-instance development.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

type entry struct {
	values    map[string]string
	expiresAt time.Time
}

// Storage is an in-memory ports.Storage.
type Storage struct {
	mu     sync.Mutex
	scopes map[string]*entry
	now    func() time.Time
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{scopes: make(map[string]*entry), now: time.Now}
}

// NewWithClock creates an in-memory storage with a custom time source.
func NewWithClock(now func() time.Time) *Storage {
	s := New()
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Storage) live(scope string) *entry {
	e, ok := s.scopes[scope]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.scopes, scope)
		return nil
	}
	return e
}

func (s *Storage) Load(_ context.Context, scope string, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(keys))
	e := s.live(scope)
	if e == nil {
		return out, nil
	}
	for _, k := range keys {
		if v, ok := e.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Storage) Store(_ context.Context, scope string, values map[string]string, ttl time.Duration) error {
	if scope == "" {
		return errors.New("storage scope cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(scope)
	if e == nil {
		e = &entry{values: make(map[string]string, len(values))}
		s.scopes[scope] = e
	}
	for k, v := range values {
		e.values[k] = v
	}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func (s *Storage) Remove(_ context.Context, scope string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(scope)
	if e == nil {
		return nil
	}
	for _, k := range keys {
		delete(e.values, k)
	}
	if len(e.values) == 0 {
		delete(s.scopes, scope)
	}
	return nil
}

// Len returns the number of live scopes.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for scope := range s.scopes {
		if s.live(scope) != nil {
			n++
		}
	}
	return n
}
