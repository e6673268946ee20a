package backend

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/storefront-admin/internal/domain/model"
	mockauth "github.com/target/storefront-admin/internal/mocks/auth"
	"github.com/target/storefront-admin/internal/testutil"
)

func TestResolveBase(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		origin  string
		want    string
		wantErr bool
	}{
		{name: "default relative", raw: "", origin: "http://localhost:8000", want: "http://localhost:8000/api"},
		{name: "relative with slash", raw: "/api/", origin: "https://shop.example.com", want: "https://shop.example.com/api"},
		{name: "absolute ignores origin", raw: "https://api.example.com/v1", origin: "", want: "https://api.example.com/v1"},
		{name: "relative without origin", raw: "/api", origin: "", wantErr: true},
		{name: "bad scheme", raw: "ftp://files.example.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := resolveBase(tt.raw, tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestClient_EndpointJoinsBasePath(t *testing.T) {
	c, err := NewClient(ClientConfig{BaseURL: "/api", Origin: "http://backend:8000"})
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/api/admin/users?search=ada", c.endpoint("/admin/users", map[string][]string{"search": {"ada"}}))
	assert.Equal(t, "http://backend:8000/api/auth/login/", c.endpoint(LoginEndpoint, nil))
	assert.Equal(t, "http://backend:8000/api", c.BaseURL())
}

func TestClient_RetriesIdempotentRequestsOnTransportErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		testutil.Envelope(w, http.StatusOK, map[string]int{"total_orders": 4}, "")
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, RetryAttempts: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	admin := NewAdmin(c.Pipeline(mockauth.NewMemoryBrowserStorage(nil)))
	stats, err := admin.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		hj, _ := w.(http.Hijacker)
		conn, _, _ := hj.Hijack()
		_ = conn.Close()
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, RetryAttempts: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	_, err = c.Pipeline(nil).Do(context.Background(), Request{Method: http.MethodPost, Path: "/admin/brands"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMultipartBody(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Handle("POST /admin/categories", testutil.Respond(http.StatusCreated, map[string]any{"id": 1}, ""))

	parent := int64(3)
	req := model.CategoryRequest{
		Name:     "Lamps",
		Slug:     "lamps",
		ParentID: &parent,
		IsActive: true,
		Image:    &model.Upload{Field: "image", Filename: "lamp.png", ContentType: "image/png", Data: []byte("PNG")},
	}
	admin := NewAdmin(newTestClient(t, b.URL).Pipeline(mockauth.NewMemoryBrowserStorage(nil)))
	_, _, err := admin.Categories().Create(context.Background(), Multipart(req))
	require.NoError(t, err)

	last := b.LastRequest()
	mediaType, params, err := mime.ParseMediaType(last.ContentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(strings.NewReader(string(last.Body)), params["boundary"])
	parts := map[string]string{}
	var filename string
	for {
		part, perr := mr.NextPart()
		if perr == io.EOF {
			break
		}
		require.NoError(t, perr)
		data, _ := io.ReadAll(part)
		parts[part.FormName()] = string(data)
		if part.FileName() != "" {
			filename = part.FileName()
		}
	}
	assert.Equal(t, "Lamps", parts["name"])
	assert.Equal(t, "3", parts["parent_id"])
	assert.Equal(t, "true", parts["is_active"])
	assert.Equal(t, "PNG", parts["image"])
	assert.Equal(t, "lamp.png", filename)
}
