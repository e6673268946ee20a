package httpx

import (
	"context"

	"github.com/target/storefront-admin/internal/service"
)

// browserKey is an unexported context key type to avoid collisions across packages.
type browserKey struct{}

// SetBrowserInContext returns a child context carrying b. A nil b returns ctx unchanged.
func SetBrowserInContext(ctx context.Context, b *service.Browser) context.Context {
	if b == nil {
		return ctx
	}
	return context.WithValue(ctx, browserKey{}, b)
}

// GetBrowserFromContext returns the browser opened for the request and whether one is present.
func GetBrowserFromContext(ctx context.Context) (*service.Browser, bool) {
	b, ok := ctx.Value(browserKey{}).(*service.Browser)
	return b, ok && b != nil
}

// GetSessionFromContext returns the browser's session, or nil.
func GetSessionFromContext(ctx context.Context) *service.Session {
	if b, ok := GetBrowserFromContext(ctx); ok {
		return b.Session
	}
	return nil
}

// IsAuthenticated reports whether the request carries an authenticated session.
func IsAuthenticated(ctx context.Context) bool {
	s := GetSessionFromContext(ctx)
	return s != nil && s.Authenticated()
}

// catalogFromContext returns the catalog bound to the request's browser.
func catalogFromContext(ctx context.Context) *service.Catalog {
	if b, ok := GetBrowserFromContext(ctx); ok {
		return b.Catalog
	}
	return nil
}
