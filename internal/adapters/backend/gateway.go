package backend

import (
	"github.com/target/storefront-admin/internal/ports"
)

// Binding is the backend as seen by one browser during one request.
type Binding struct {
	*AuthAPI

	pipe  *Pipeline
	admin *Admin
}

var (
	_ ports.Gateway        = (*Client)(nil)
	_ ports.BrowserBackend = (*Binding)(nil)
)

// Open binds the client to a browser's storage and current location.
func (c *Client) Open(storage ports.BrowserStorage, location string) ports.BrowserBackend {
	return c.Bind(storage, location)
}

// Bind is Open with the concrete return type.
func (c *Client) Bind(storage ports.BrowserStorage, location string) *Binding {
	p := c.Pipeline(storage, WithLocation(location))
	return &Binding{AuthAPI: NewAuthAPI(p), pipe: p, admin: NewAdmin(p)}
}

// Admin returns the admin endpoints.
func (b *Binding) Admin() ports.AdminAPI { return b.admin }

// Observe registers a forced-logout observer on the underlying pipeline.
func (b *Binding) Observe(o ports.LogoutObserver) { b.pipe.Observe(o) }

// Pipeline returns the underlying pipeline.
func (b *Binding) Pipeline() *Pipeline { return b.pipe }
