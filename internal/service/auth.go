package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/target/storefront-admin/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway ports.Gateway
	Storage ports.Storage
	Config  AuthServiceConfig
}

// AuthServiceConfig tunes AuthService.
type AuthServiceConfig struct {
	// MaxTTL caps how long a persisted credential lives. Zero means no cap.
	MaxTTL time.Duration
	Logger *slog.Logger
	// Now is the clock used for token expiry. Defaults to time.Now.
	Now func() time.Time
}

// AuthService opens the per-browser view of the console: the browser's
// persisted storage, its session and the backend bound to both.
type AuthService struct {
	gateway ports.Gateway
	storage ports.Storage
	ttl     TTLFunc
	logger  *slog.Logger
}

var errNoBrowser = errors.New("browser id is required")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if opts.Storage == nil {
		return nil, errors.New("storage is required")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		gateway: opts.Gateway,
		storage: opts.Storage,
		ttl:     TokenTTL(opts.Config.MaxTTL, opts.Config.Now),
		logger:  logger,
	}, nil
}

// NewBrowserID returns a fresh random browser identifier.
func NewBrowserID() string { return uuid.NewString() }

// ValidBrowserID reports whether id looks like one NewBrowserID produced.
func ValidBrowserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Browser is everything one browser request works with.
type Browser struct {
	ID      string
	Session *Session
	Catalog *Catalog
	Backend ports.BrowserBackend
}

// Open binds storage, session and backend to browserID for a request made
// at location. The session is registered as a forced-logout observer ahead
// of the extra observers, and is restored before Open returns.
func (s *AuthService) Open(ctx context.Context, browserID, location string, observers ...ports.LogoutObserver) (*Browser, error) {
	if browserID == "" {
		return nil, errNoBrowser
	}
	logger := s.logger.With("browser", shortID(browserID))
	storage := NewBrowserStorage(s.storage, browserID, s.ttl)
	be := s.gateway.Open(storage, location)

	session := NewSession(SessionOptions{Storage: storage, Authenticator: be, Logger: logger})
	be.Observe(session)
	for _, o := range observers {
		if o != nil {
			be.Observe(o)
		}
	}
	session.Restore(ctx)

	return &Browser{
		ID:      browserID,
		Session: session,
		Catalog: NewCatalog(CatalogOptions{Admin: be.Admin(), Logger: logger}),
		Backend: be,
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
