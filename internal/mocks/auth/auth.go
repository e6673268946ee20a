package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"maps"
	"sync"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	"github.com/target/storefront-admin/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator  = (*StubAuthenticator)(nil)
	_ ports.BrowserStorage = (*MemoryBrowserStorage)(nil)
	_ ports.LogoutObserver = (*RecordingObserver)(nil)
)

// StubAuthenticator answers Login from LoginFunc or a fixed credential.
type StubAuthenticator struct {
	LoginFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.Credential, error)

	Credential domainauth.Credential
	Err        error

	mu    sync.Mutex
	calls []domainauth.Credentials
}

func (s *StubAuthenticator) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Credential, error) {
	s.mu.Lock()
	s.calls = append(s.calls, creds)
	s.mu.Unlock()

	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, creds)
	}
	return s.Credential, s.Err
}

// Calls returns the credentials passed to Login so far.
func (s *StubAuthenticator) Calls() []domainauth.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domainauth.Credentials(nil), s.calls...)
}

// MemoryBrowserStorage is an in-memory single-browser storage for unit tests.
// Setting the *Err fields makes the corresponding call fail.
type MemoryBrowserStorage struct {
	GetErr    error
	SetAllErr error
	RemoveErr error

	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemoryBrowserStorage creates a storage seeded with values.
func NewMemoryBrowserStorage(values map[string]string) *MemoryBrowserStorage {
	m := &MemoryBrowserStorage{values: make(map[string]string)}
	maps.Copy(m.values, values)
	return m
}

func (m *MemoryBrowserStorage) Get(_ context.Context, keys ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MemoryBrowserStorage) SetAll(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetAllErr != nil {
		return m.SetAllErr
	}
	if len(values) == 0 {
		return errors.New("nothing to store")
	}
	maps.Copy(m.values, values)
	m.writes++
	return nil
}

func (m *MemoryBrowserStorage) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Snapshot returns a copy of the stored values.
func (m *MemoryBrowserStorage) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values)
}

// Writes returns how many successful SetAll calls were made.
func (m *MemoryBrowserStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// RecordingObserver collects forced-logout notifications.
type RecordingObserver struct {
	mu     sync.Mutex
	events []domainauth.ForcedLogout
}

func (r *RecordingObserver) ForcedLogout(ev domainauth.ForcedLogout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns the notifications received so far.
func (r *RecordingObserver) Events() []domainauth.ForcedLogout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domainauth.ForcedLogout(nil), r.events...)
}
