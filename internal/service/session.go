package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/ports"
)

// SessionOptions groups dependencies for Session.
type SessionOptions struct {
	Storage       ports.BrowserStorage
	Authenticator ports.Authenticator
	Logger        *slog.Logger
}

// Session is the single source of truth for one browser's admin identity and
// the only writer of the persisted credential besides forced logout.
type Session struct {
	storage ports.BrowserStorage
	auth    ports.Authenticator
	logger  *slog.Logger

	restoreOnce sync.Once

	mu       sync.RWMutex
	state    domainauth.State
	identity *domainauth.Identity
}

var _ ports.LogoutObserver = (*Session)(nil)

// NewSession creates a session in the restoring state.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		storage: opts.Storage,
		auth:    opts.Authenticator,
		logger:  logger.With("component", "session"),
		state:   domainauth.StateRestoring,
	}
}

// Restore reads the persisted credential once. Missing keys, a storage
// failure or a corrupt identity record all leave the session unauthenticated.
// The persisted token is trusted as is; the first authorized call finds out
// whether it is still accepted.
func (s *Session) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		identity := s.readPersisted(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state != domainauth.StateRestoring {
			return
		}
		s.identity = identity
		if identity != nil {
			s.state = domainauth.StateAuthenticated
		} else {
			s.state = domainauth.StateUnauthenticated
		}
	})
}

func (s *Session) readPersisted(ctx context.Context) *domainauth.Identity {
	values, err := s.storage.Get(ctx, domainauth.StorageKeys()...)
	if err != nil {
		s.logger.WarnContext(ctx, "read persisted credential", "error", err)
		return nil
	}
	token, raw := values[domainauth.TokenKey], values[domainauth.UserKey]
	if token == "" || raw == "" {
		return nil
	}
	var identity domainauth.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.logger.DebugContext(ctx, "discard corrupt identity record", "error", err)
		return nil
	}
	if !identity.IsStaff || (identity.ID == "" && identity.Email == "") {
		return nil
	}
	return &identity
}

// Login exchanges credentials for a token. Backend rejections are returned
// unchanged. A principal without the staff flag is refused with an
// authorization error and nothing is persisted.
func (s *Session) Login(ctx context.Context, email, password string) (*domainauth.Identity, error) {
	cred, err := s.auth.Login(ctx, domainauth.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if !cred.Identity.IsStaff {
		s.logger.InfoContext(ctx, "login refused for non-staff principal", "user_id", cred.Identity.ID)
		return nil, apperrors.Authorization(domainauth.PrivilegeDenied)
	}
	if !cred.Valid() {
		return nil, apperrors.Server("The server returned a malformed login response.")
	}

	record, err := json.Marshal(cred.Identity)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}
	if err := s.storage.SetAll(ctx, map[string]string{
		domainauth.TokenKey: cred.Token,
		domainauth.UserKey:  string(record),
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist credential")
	}

	identity := cred.Identity
	s.mu.Lock()
	s.identity = &identity
	s.state = domainauth.StateAuthenticated
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "admin logged in", "user_id", identity.ID)
	return &identity, nil
}

// Logout clears both persisted keys and the in-memory identity. Logging out
// twice is not an error.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.storage.Remove(ctx, domainauth.StorageKeys()...); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear credential")
	}
	s.clear()
	return nil
}

// ForcedLogout clears the in-memory identity after the pipeline removed the
// persisted credential.
func (s *Session) ForcedLogout(ev domainauth.ForcedLogout) {
	s.logger.Info("session cleared by backend rejection", "location", ev.Location)
	s.clear()
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.state = domainauth.StateUnauthenticated
}

// State returns the current lifecycle state.
func (s *Session) State() domainauth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Restoring reports whether Restore has not completed yet.
func (s *Session) Restoring() bool { return s.State() == domainauth.StateRestoring }

// Authenticated reports whether an identity is present.
func (s *Session) Authenticated() bool { return s.State() == domainauth.StateAuthenticated }

// Identity returns a copy of the current identity, or nil.
func (s *Session) Identity() *domainauth.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}
