package ports

import (
	"context"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
)

// Authenticator exchanges credentials for a bearer token with the backend.
// It does not check privileges and does not persist anything.
type Authenticator interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Credential, error)
}

// LogoutObserver is notified after a 401 cleared persisted storage.
type LogoutObserver interface {
	ForcedLogout(ev domainauth.ForcedLogout)
}

// LogoutObserverFunc adapts a function to LogoutObserver.
type LogoutObserverFunc func(ev domainauth.ForcedLogout)

// ForcedLogout calls f(ev).
func (f LogoutObserverFunc) ForcedLogout(ev domainauth.ForcedLogout) { f(ev) }
