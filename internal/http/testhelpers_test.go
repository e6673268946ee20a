package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	backendadapter "github.com/target/storefront-admin/internal/adapters/backend"
	"github.com/target/storefront-admin/internal/adapters/memstore"
	"github.com/target/storefront-admin/internal/service"
	"github.com/target/storefront-admin/internal/testutil"
)

const testCSRFToken = "test-csrf-token"

// RequireTemplateRenderer parses the real templates or skips the test.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// SkipIfNoTemplates skips tests that need the frontend tree.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// consoleHarness is the full router in front of a fake REST backend, with
// one browser whose cookies every request carries.
type consoleHarness struct {
	t         *testing.T
	Backend   *testutil.Backend
	Store     *memstore.Storage
	Handler   http.Handler
	BrowserID string
}

func newConsoleHarness(t *testing.T) *consoleHarness {
	t.Helper()
	SkipIfNoTemplates(t)

	be := testutil.NewBackend(t)
	client, err := backendadapter.NewClient(backendadapter.ClientConfig{
		BaseURL: be.URL,
		Timeout: 5 * time.Second,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)

	store := memstore.New()
	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Gateway: client,
		Storage: store,
		Config:  service.AuthServiceConfig{MaxTTL: time.Hour, Logger: discardLogger()},
	})
	require.NoError(t, err)

	return &consoleHarness{
		t:       t,
		Backend: be,
		Store:   store,
		Handler: NewRouter(RouterServices{
			Auth:       auth,
			Logger:     discardLogger(),
			TemplateFS: os.DirFS(TemplatePathFromTest),
			StaticFS:   os.DirFS(StaticPathFromTest),
		}),
		BrowserID: service.NewBrowserID(),
	}
}

// signIn persists a staff credential for the harness browser.
func (h *consoleHarness) signIn(token string) {
	h.t.Helper()
	cred := testutil.NewIdentity().StoredCredential(token)
	require.NoError(h.t, h.Store.Store(context.Background(), h.BrowserID, cred, time.Hour))
}

func (h *consoleHarness) newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: BrowserCookieName, Value: h.BrowserID})
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return req
}

func (h *consoleHarness) get(target string) *httptest.ResponseRecorder {
	return h.serve(h.newRequest(http.MethodGet, target, nil))
}

func (h *consoleHarness) htmxGet(target string) *httptest.ResponseRecorder {
	req := h.newRequest(http.MethodGet, target, nil)
	req.Header.Set("Hx-Request", "true")
	return h.serve(req)
}

// postForm submits a urlencoded form with a valid CSRF token.
func (h *consoleHarness) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, testCSRFToken)
	req := h.newRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.serve(req)
}

// htmxPost sends an htmx POST with the CSRF header and no body.
func (h *consoleHarness) htmxPost(target string) *httptest.ResponseRecorder {
	req := h.newRequest(http.MethodPost, target, nil)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	return h.serve(req)
}

func (h *consoleHarness) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handler.ServeHTTP(rec, req)
	return rec
}

// storedKeys returns what is persisted for the harness browser.
func (h *consoleHarness) storedKeys(keys ...string) map[string]string {
	h.t.Helper()
	got, err := h.Store.Load(context.Background(), h.BrowserID, keys...)
	require.NoError(h.t, err)
	return got
}
