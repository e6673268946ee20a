// Package storefront provides the embedded console frontend for production builds.
package storefront

import "embed"

// In dev mode (IsDev=true) templates and static files are read from disk for
// hot reloading; otherwise they are served from these embedded filesystems.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
