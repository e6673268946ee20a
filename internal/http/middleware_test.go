package httpx

import (
	"bytes"
	"crypto/tls"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirectPath(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/orders?status=paid":  "/orders?status=paid",
		"//evil.example":       "/",
		"https://evil.example": "/",
		`/\evil.example`:       "/",
		"orders":               "/",
		"/brands/2/edit":       "/brands/2/edit",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeRedirectPath(in), "input %q", in)
	}
}

func TestSafeRedirectFromURL(t *testing.T) {
	assert.Equal(t, "/products?page=2", safeRedirectFromURL("http://admin.test/products?page=2"))
	assert.Equal(t, "", safeRedirectFromURL(""))
	assert.Equal(t, "", safeRedirectFromURL("//evil.example/x"))
}

func TestIsSecureRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isSecureRequest(r))

	r.Header.Set("X-Forwarded-Proto", "https, http")
	assert.True(t, isSecureRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	assert.True(t, isSecureRequest(r))
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		path, accept string
		htmx         bool
		want         bool
	}{
		{path: "/brands", accept: "text/html,application/xhtml+xml", want: true},
		{path: "/brands", accept: "", want: true},
		{path: "/brands", accept: "application/json", want: false},
		{path: "/brands", accept: "application/json", htmx: true, want: true},
		{path: "/static/css/app.css", accept: "text/html", want: false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.accept != "" {
			r.Header.Set("Accept", tt.accept)
		}
		if tt.htmx {
			r.Header.Set("Hx-Request", "true")
		}
		assert.Equal(t, tt.want, IsBrowserRequest(r), "%s accept=%q htmx=%v", tt.path, tt.accept, tt.htmx)
	}
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "kaboom")
}

func TestLogging_RecordsStatus(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodGet, "/brands", nil)
	r.Header.Set("Hx-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Contains(t, logs.String(), "status=418")
	assert.Contains(t, logs.String(), "path=/brands")
	assert.Contains(t, logs.String(), "htmx=true")
}
