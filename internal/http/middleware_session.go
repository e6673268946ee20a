package httpx

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	"github.com/target/storefront-admin/internal/ports"
	"github.com/target/storefront-admin/internal/service"
)

// BrowserOpener opens the per-browser session and backend for a request.
// *service.AuthService implements it.
type BrowserOpener interface {
	Open(ctx context.Context, browserID, location string, observers ...ports.LogoutObserver) (*service.Browser, error)
}

const browserCookieMaxAge = 400 * 24 * 3600

type browserIDKey struct{}

// BrowserScope gives every browser a stable random id in the admin_browser
// cookie. The id scopes persisted session storage the way an origin scopes
// a browser's local storage. Missing or malformed ids are replaced.
func BrowserScope(cookieDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := readCookie(r, BrowserCookieName)
			if !service.ValidBrowserID(id) {
				id = service.NewBrowserID()
				http.SetCookie(w, &http.Cookie{
					Name:     BrowserCookieName,
					Value:    id,
					Path:     "/",
					Domain:   cookieDomain,
					HttpOnly: true,
					Secure:   isSecureRequest(r),
					SameSite: http.SameSiteLaxMode,
					MaxAge:   browserCookieMaxAge,
				})
			}
			ctx := context.WithValue(r.Context(), browserIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BrowserIDFromContext returns the id assigned by BrowserScope.
func BrowserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(browserIDKey{}).(string)
	return id
}

var errNoBrowserScope = errors.New("browser scope missing from request context")

// LoadSession opens the browser's session and backend for the request and
// stores them in the context. The location handed to the backend is the page
// the browser is on, so a rejection on the login page does not redirect.
func LoadSession(opener BrowserOpener, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := BrowserIDFromContext(r.Context())
			if id == "" {
				logger.ErrorContext(r.Context(), "load session", "error", errNoBrowserScope)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			var observers []ports.LogoutObserver
			if sig := logoutSignalFrom(r.Context()); sig != nil {
				observers = append(observers, sig)
			}
			b, err := opener.Open(r.Context(), id, CurrentPath(r), observers...)
			if err != nil {
				logger.ErrorContext(r.Context(), "open browser session", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetBrowserInContext(r.Context(), b)))
		})
	}
}

// RequireSession lets authenticated requests through. Browsers are sent to
// the login page, API clients get 401 JSON.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAuthenticated(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			if IsBrowserRequest(r) {
				redirectToLogin(w, r)
				return
			}
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "authentication_required",
				Err:     errors.New("authentication required"),
			})
		})
	}
}

// logoutSignal records whether a forced logout asked for a redirect during
// the request. It is safe for concurrent backend calls.
type logoutSignal struct {
	fired atomic.Bool
}

func (s *logoutSignal) ForcedLogout(ev domainauth.ForcedLogout) {
	if ev.Redirect {
		s.fired.Store(true)
	}
}

type logoutSignalKey struct{}

func logoutSignalFrom(ctx context.Context) *logoutSignal {
	sig, _ := ctx.Value(logoutSignalKey{}).(*logoutSignal)
	return sig
}

// ForcedLogoutRedirect holds back the handler's response. When the backend
// rejected the credential during the request, the held response is dropped
// and the browser is sent to the login page instead, whether or not the
// handler noticed the error. It must run before LoadSession.
func ForcedLogoutRedirect(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sig := &logoutSignal{}
			bw := newBufferedWriter(w)
			next.ServeHTTP(bw, r.WithContext(context.WithValue(r.Context(), logoutSignalKey{}, sig)))

			if sig.fired.Load() {
				logger.InfoContext(r.Context(), "forced logout redirect", "path", r.URL.Path)
				redirect(w, r, LoginPath)
				return
			}
			bw.flush()
		})
	}
}

// bufferedWriter captures status, headers and body until flush.
type bufferedWriter struct {
	w      http.ResponseWriter
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{w: w, header: make(http.Header)}
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) flush() {
	dst := b.w.Header()
	for k, v := range b.header {
		if k == "Set-Cookie" {
			dst[k] = append(dst[k], v...)
			continue
		}
		dst[k] = v
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = b.body.WriteTo(b.w)
	}
}
