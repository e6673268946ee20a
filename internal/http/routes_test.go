package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/testutil"
)

func TestRouter_Healthz(t *testing.T) {
	h := newConsoleHarness(t)

	rec := h.get("/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Empty(t, h.Backend.Requests(), "health check must not call the backend")
}

func TestRouter_AnonymousBrowserIsSentToLogin(t *testing.T) {
	h := newConsoleHarness(t)

	rec := h.get("/brands?search=acme")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri="+url.QueryEscape("/brands?search=acme"), rec.Header().Get("Location"))
}

func TestRouter_AnonymousAPIClientGets401(t *testing.T) {
	h := newConsoleHarness(t)
	req := h.newRequest(http.MethodGet, "/brands", nil)
	req.Header.Set("Accept", "application/json")

	rec := h.serve(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRouter_NewBrowserGetsScopeCookie(t *testing.T) {
	h := newConsoleHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)

	rec := h.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	for _, c := range rec.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, BrowserCookieName)
	assert.Contains(t, names, DefaultCSRFCookieName)
}

func TestRouter_LoginPage(t *testing.T) {
	h := newConsoleHarness(t)

	rec := h.get("/login?redirect_uri=/orders")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sign in")
	assert.Contains(t, body, testCSRFToken)
	assert.Contains(t, body, `value="/orders"`)
}

func TestRouter_LoginPage_SignedInBrowserIsRedirected(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")

	rec := h.get("/login?redirect_uri=/orders")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get("Location"))
}

func TestRouter_Login(t *testing.T) {
	tests := []struct {
		name       string
		backend    http.HandlerFunc
		form       url.Values
		wantStatus int
		wantBody   string
		wantStored bool
	}{
		{
			name:       "success persists credential and redirects",
			backend:    testutil.Respond(http.StatusOK, testutil.NewIdentity().LoginPayload("tok-1"), ""),
			form:       url.Values{"email": {"ada@example.com"}, "password": {"secret"}, "redirect_uri": {"/brands"}},
			wantStatus: http.StatusSeeOther,
			wantStored: true,
		},
		{
			name:       "non-staff principal is refused",
			backend:    testutil.Respond(http.StatusOK, testutil.NewIdentity().NonStaff().LoginPayload("tok-2"), ""),
			form:       url.Values{"email": {"ada@example.com"}, "password": {"secret"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   domainauth.PrivilegeDenied,
		},
		{
			name:       "backend rejection message is shown",
			backend:    testutil.Reject(http.StatusBadRequest, "Invalid email or password", nil),
			form:       url.Values{"email": {"ada@example.com"}, "password": {"wrong"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password",
		},
		{
			name: "backend 401 shows its message and field errors",
			backend: testutil.Reject(http.StatusUnauthorized, "Invalid email or password", map[string][]string{
				"email": {"No active account with this email"},
			}),
			form:       url.Values{"email": {"ada@example.com"}, "password": {"wrong"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "No active account with this email",
		},
		{
			name:       "local validation skips the backend",
			form:       url.Values{"email": {"not-an-email"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   errMsgFixBelow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newConsoleHarness(t)
			if tt.backend != nil {
				h.Backend.Handle("POST /auth/login/", tt.backend)
			}

			rec := h.postForm(LoginPath, tt.form)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			stored := h.storedKeys(domainauth.StorageKeys()...)
			if tt.wantStored {
				assert.Equal(t, "/brands", rec.Header().Get("Location"))
				assert.Equal(t, "tok-1", stored[domainauth.TokenKey])
				assert.NotEmpty(t, stored[domainauth.UserKey])
			} else {
				assert.Empty(t, stored)
			}
			if tt.backend == nil {
				assert.Empty(t, h.Backend.Requests())
			}
		})
	}
}

func TestRouter_LoginBackend401KeepsBannerAndStaysOnLogin(t *testing.T) {
	h := newConsoleHarness(t)
	h.Backend.Handle("POST /auth/login/", testutil.Reject(http.StatusUnauthorized, "Invalid email or password", map[string][]string{
		"email": {"No active account with this email"},
	}))

	rec := h.postForm(LoginPath, url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid email or password")
	assert.Contains(t, body, "No active account with this email")
	assert.NotContains(t, body, errMsgLoginFailed)
}

func TestRouter_Logout(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")

	rec := h.postForm(LogoutPath, nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	assert.Empty(t, h.storedKeys(domainauth.StorageKeys()...))
}

func TestRouter_PostWithoutCSRFTokenIsRejected(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")
	req := h.newRequest(http.MethodPost, LogoutPath, strings.NewReader("x=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := h.serve(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotEmpty(t, h.storedKeys(domainauth.TokenKey), "credential must survive a rejected post")
}

func TestRouter_Dashboard(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")
	h.Backend.Handle("GET /admin/dashboard", testutil.Respond(http.StatusOK, model.DashboardStats{
		TotalOrders:    1234,
		TotalCustomers: 56,
	}, ""))

	rec := h.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total Orders")
	assert.Contains(t, body, "1,234")
	assert.Contains(t, body, "Ada Admin")
	assert.Equal(t, "Bearer tok", h.Backend.LastRequest().Authorization)
}

func TestRouter_BrandsList(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")
	h.Backend.Handle("GET /admin/brands", testutil.Respond(http.StatusOK, []model.Brand{
		{ID: 1, Name: "Acme", Slug: "acme", IsActive: true},
		{ID: 2, Name: "Globex", Slug: "globex"},
	}, ""))

	t.Run("full page", func(t *testing.T) {
		rec := h.get("/brands")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<html")
		assert.Contains(t, body, "Acme")
		assert.Contains(t, body, "Globex")
		assert.Contains(t, body, "/brands/2/delete")
	})

	t.Run("htmx partial", func(t *testing.T) {
		rec := h.htmxGet("/brands")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, "<html")
		assert.True(t, strings.HasPrefix(body, "<title>Brands | Store Admin</title>"))
		assert.Contains(t, body, `hx-swap-oob="outerHTML"`)
		assert.Contains(t, body, "Acme")
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "nav:activate")
	})

	t.Run("pagination", func(t *testing.T) {
		rec := h.get("/brands?page=2&page_size=1")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Globex")
		assert.NotContains(t, body, "/brands/1/edit")
	})
}

func TestRouter_ListFailureShowsBanner(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")
	h.Backend.Handle("GET /admin/brands", testutil.Reject(http.StatusInternalServerError, "Database unavailable", nil))

	rec := h.get("/brands")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Database unavailable")
	assert.Contains(t, body, "No brands found.")
}

func TestRouter_ForcedLogoutRedirectsToLogin(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("expired")
	h.Backend.Handle("GET /admin/brands", testutil.Reject(http.StatusUnauthorized, "Token expired", nil))

	t.Run("plain request", func(t *testing.T) {
		rec := h.get("/brands")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
		assert.Empty(t, h.storedKeys(domainauth.StorageKeys()...))
	})

	t.Run("htmx request", func(t *testing.T) {
		h.signIn("expired")

		rec := h.htmxGet("/brands")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Hx-Redirect"))
	})
}

func TestRouter_BrandCreate(t *testing.T) {
	t.Run("validation errors re-render without calling the backend", func(t *testing.T) {
		h := newConsoleHarness(t)
		h.signIn("tok")

		rec := h.postForm("/brands", url.Values{"name": {""}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), errMsgFixBelow)
		for _, r := range h.Backend.Requests() {
			assert.NotEqual(t, http.MethodPost, r.Method)
		}
	})

	t.Run("success flashes and redirects", func(t *testing.T) {
		h := newConsoleHarness(t)
		h.signIn("tok")
		h.Backend.Handle("POST /admin/brands", testutil.Respond(http.StatusCreated, model.Brand{ID: 9, Name: "Initech"}, "Brand created"))

		rec := h.postForm("/brands", url.Values{"name": {"Initech"}, "is_active": {"on"}})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/brands", rec.Header().Get("Location"))
		var flash *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == FlashCookieName {
				flash = c
			}
		}
		require.NotNil(t, flash)
		assert.Equal(t, "Bearer tok", h.Backend.LastRequest().Authorization)
	})

	t.Run("backend field errors are shown inline", func(t *testing.T) {
		h := newConsoleHarness(t)
		h.signIn("tok")
		h.Backend.Handle("POST /admin/brands", testutil.Reject(http.StatusBadRequest, "", map[string][]string{
			"name": {"brand with this name already exists."},
		}))

		rec := h.postForm("/brands", url.Values{"name": {"Acme"}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "brand with this name already exists.")
	})
}

func TestRouter_DeleteOverHTMX(t *testing.T) {
	t.Run("success removes the row", func(t *testing.T) {
		h := newConsoleHarness(t)
		h.signIn("tok")
		h.Backend.Handle("DELETE /admin/brands/7", testutil.Respond(http.StatusOK, nil, "Brand deleted"))

		rec := h.htmxPost("/brands/7/delete")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Brand deleted")
	})

	t.Run("failure keeps the row", func(t *testing.T) {
		h := newConsoleHarness(t)
		h.signIn("tok")
		h.Backend.Handle("DELETE /admin/brands/7", testutil.Reject(http.StatusBadRequest, "Brand has products", nil))

		rec := h.htmxPost("/brands/7/delete")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Brand has products")
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), toastError)
	})
}

func TestRouter_EditUnknownRecordIs404(t *testing.T) {
	h := newConsoleHarness(t)
	h.signIn("tok")
	h.Backend.Handle("GET /admin/brands/404", testutil.Reject(http.StatusNotFound, "Not found.", nil))

	rec := h.get("/brands/404/edit")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestRouter_UnknownPath(t *testing.T) {
	h := newConsoleHarness(t)

	rec := h.get("/no-such-page")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestRouter_StaticFiles(t *testing.T) {
	if _, err := os.Stat(StaticPathFromTest); err != nil {
		t.Skip("static files not available")
	}
	h := newConsoleHarness(t)

	plain := h.get("/static/css/app.css")
	require.Equal(t, http.StatusOK, plain.Code)
	assert.Equal(t, "no-cache", plain.Header().Get("Cache-Control"))

	versioned := h.get("/static/css/app.css?v=abc")
	require.Equal(t, http.StatusOK, versioned.Code)
	assert.Contains(t, versioned.Header().Get("Cache-Control"), "immutable")
}

func TestStaticHandler_CacheHeaders(t *testing.T) {
	fsys := fstest.MapFS{"js/app.js": &fstest.MapFile{Data: []byte("console.log(1)")}}
	handler := staticHandler(fsys)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/app.js?v=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompressionLevel(t *testing.T) {
	tests := map[int]int{0: 5, -3: 1, 1: 1, 6: 6, 9: 9, 42: 9}
	for in, want := range tests {
		assert.Equal(t, want, compressionLevel(in), "level %d", in)
	}
}
