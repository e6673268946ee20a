package backend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/ports"
)

// LoginPath is the console route that hosts the login form.
const LoginPath = "/login"

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   Body
}

// Pipeline is the authorized request path of one browser. It reads the token
// from the browser's persisted storage on every call, so a login or logout is
// visible to the next call without coordination.
type Pipeline struct {
	client    *Client
	storage   ports.BrowserStorage
	location  string
	observers []ports.LogoutObserver
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLocation sets the console path the browser is on. It decides whether a
// 401 asks observers to redirect to the login page.
func WithLocation(path string) PipelineOption {
	return func(p *Pipeline) { p.location = path }
}

// WithObserver registers an observer for forced logouts.
func WithObserver(o ports.LogoutObserver) PipelineOption {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithLogger overrides the client's logger.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline binds the client to one browser's storage.
func (c *Client) Pipeline(storage ports.BrowserStorage, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{client: c, storage: storage, logger: c.logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Observe registers an additional forced-logout observer.
func (p *Pipeline) Observe(o ports.LogoutObserver) {
	if o != nil {
		p.observers = append(p.observers, o)
	}
}

// Location returns the console path the pipeline was bound to.
func (p *Pipeline) Location() string { return p.location }

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}

// Do performs req. On success the envelope's data is decoded into out (when
// out is non-nil) and the envelope is returned for its message. On failure the
// returned error is an *errors.AppError classified by status.
func (p *Pipeline) Do(ctx context.Context, req Request, out any) (*Envelope, error) {
	token := p.token(ctx)

	start := time.Now()
	resp, err := p.client.send(ctx, req, token)
	if err != nil {
		p.log().WarnContext(ctx, "backend request failed",
			"method", req.Method, "path", req.Path, "error", err)
		if errors.Is(err, errTransport) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Network(err)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not send the request.")
	}

	p.log().DebugContext(ctx, "backend request",
		"method", req.Method, "path", req.Path, "status", resp.Status,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.Status >= 200 && resp.Status < 300 {
		return decodeSuccess(resp.Body, out)
	}

	appErr := decodeFailure(resp.Status, resp.Body)
	if resp.Status == http.StatusUnauthorized {
		p.forceLogout(ctx)
	}
	return nil, appErr
}

func decodeSuccess(body []byte, out any) (*Envelope, error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if out != nil && env.HasData() {
		if uerr := json.Unmarshal(env.Data, out); uerr != nil {
			return nil, apperrors.Wrap(uerr, apperrors.ErrCodeServer, "The server returned an unexpected response.")
		}
	}
	return env, nil
}

// token reads the persisted bearer token. A storage failure is treated as no
// token; the backend then answers 401 for protected endpoints.
func (p *Pipeline) token(ctx context.Context) string {
	if p.storage == nil {
		return ""
	}
	vals, err := p.storage.Get(ctx, domainauth.TokenKey)
	if err != nil {
		p.log().WarnContext(ctx, "read persisted token", "error", err)
		return ""
	}
	return vals[domainauth.TokenKey]
}

// forceLogout clears both persisted keys and notifies observers once.
// Storage is cleared even when the caller's context is already done.
func (p *Pipeline) forceLogout(ctx context.Context) {
	if p.storage != nil {
		clearCtx := context.WithoutCancel(ctx)
		if err := p.storage.Remove(clearCtx, domainauth.StorageKeys()...); err != nil {
			p.log().ErrorContext(ctx, "clear persisted session after 401", "error", err)
		}
	}

	ev := domainauth.ForcedLogout{
		Location: p.location,
		Redirect: !IsLoginSurface(p.location),
	}
	p.log().InfoContext(ctx, "session expired", "location", p.location, "redirect", ev.Redirect)
	for _, o := range p.observers {
		o.ForcedLogout(ev)
	}
}

// IsLoginSurface reports whether path is the login page or below it.
func IsLoginSurface(path string) bool {
	return strings.Contains(path, LoginPath)
}

// attachBearer sets the Authorization header when token is non-empty.
func attachBearer(req *http.Request, token string) {
	if token == "" {
		return
	}
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}
