// Package assets fingerprints static files so templates can link them with
// long-lived cache headers.
package assets

import (
	"io/fs"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultPrefix is the URL prefix static files are served under.
const DefaultPrefix = "/static/"

// VersionParam is the query parameter carrying the content fingerprint.
const VersionParam = "v"

// Resolver maps logical asset names ("css/app.css") to cache-busted URLs
// ("/static/css/app.css?v=1a2b3c4d5e6f7a8b"). Fingerprints are content
// hashes computed on first use. In dev mode they are recomputed on every
// call so edited files are picked up without a restart.
type Resolver struct {
	fsys    fs.FS
	prefix  string
	devMode bool
	logger  *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// Options configures a Resolver.
type Options struct {
	FS      fs.FS // static root, e.g. fs.Sub(StaticFS, "frontend/static")
	Prefix  string
	DevMode bool
	Logger  *slog.Logger
}

// NewResolver creates a resolver over opts.FS.
func NewResolver(opts Options) *Resolver {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		fsys:    opts.FS,
		prefix:  prefix,
		devMode: opts.DevMode,
		logger:  logger,
		cache:   make(map[string]string),
	}
}

// Resolve returns the URL for a logical asset name. Unknown assets resolve
// to their plain URL so a missing file shows up as a 404 rather than a
// template failure.
func (r *Resolver) Resolve(logicalName string) string {
	name := strings.TrimPrefix(path.Clean("/"+logicalName), "/")
	if r == nil {
		return DefaultPrefix + name
	}
	plain := r.prefix + name
	if r.fsys == nil {
		return plain
	}

	if !r.devMode {
		r.mu.RLock()
		resolved, ok := r.cache[name]
		r.mu.RUnlock()
		if ok {
			return resolved
		}
	}

	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		r.logger.Warn("asset not found", "asset", name, "error", err)
		return plain
	}
	resolved := plain + "?" + VersionParam + "=" + Fingerprint(data)

	if !r.devMode {
		r.mu.Lock()
		r.cache[name] = resolved
		r.mu.Unlock()
	}
	return resolved
}

// Fingerprint returns the 16 hex digit content hash used in asset URLs.
func Fingerprint(data []byte) string {
	s := strconv.FormatUint(xxhash.Sum64(data), 16)
	if len(s) < 16 {
		s = strings.Repeat("0", 16-len(s)) + s
	}
	return s
}
