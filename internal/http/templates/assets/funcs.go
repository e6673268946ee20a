package assets

import (
	"html/template"

	httpassets "github.com/target/storefront-admin/internal/http/assets"
)

// Options configures asset-related template helpers.
type Options struct {
	Resolver *httpassets.Resolver
}

// Funcs returns the asset template helper.
func Funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"asset": opts.Resolver.Resolve,
	}
}
