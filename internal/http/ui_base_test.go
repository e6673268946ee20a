package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

func TestGetPageParams(t *testing.T) {
	tests := []struct {
		query            string
		wantPage, wantSz int
	}{
		{query: "", wantPage: 1, wantSz: defaultPageSize},
		{query: "page=3&page_size=25", wantPage: 3, wantSz: 25},
		{query: "page=0&page_size=0", wantPage: 1, wantSz: defaultPageSize},
		{query: "page=x&page_size=500", wantPage: 1, wantSz: defaultPageSize},
	}
	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		require.NoError(t, err)
		page, size := getPageParams(q)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantSz, size, tt.query)
	}
}

func TestBuildPageURL(t *testing.T) {
	q := url.Values{
		"search":     {"shoe"},
		"status":     {""},
		"hx-request": {"true"},
		"page":       {"1"},
	}

	got := buildPageURL("/products", q, pageOpts{Page: 2, PageSize: 10})

	assert.Equal(t, "/products?page=2&page_size=10&search=shoe", got)
}

func TestPaginateSlice(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("middle page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/brands?page=2&search=a", nil)

		got, p := paginateSlice(items, "/brands", r)

		assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, got)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 23, p.TotalCount)
		assert.Equal(t, 11, p.StartIndex)
		assert.Equal(t, 20, p.EndIndex)
		assert.True(t, p.HasPrev)
		assert.True(t, p.HasNext)
		assert.Equal(t, "/brands?page=1&page_size=10&search=a", p.PrevURL)
		assert.Equal(t, "/brands?page=3&page_size=10&search=a", p.NextURL)
	})

	t.Run("page past the end clamps to the last", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/brands?page=9", nil)

		got, p := paginateSlice(items, "/brands", r)

		assert.Equal(t, []int{21, 22, 23}, got)
		assert.Equal(t, 3, p.Page)
		assert.False(t, p.HasNext)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/brands", nil)

		got, p := paginateSlice([]int{}, "/brands", r)

		assert.Empty(t, got)
		assert.Equal(t, 1, p.TotalPages)
		assert.Zero(t, p.StartIndex)
		assert.False(t, p.HasPrev)
	})
}

func TestResolveFormMode(t *testing.T) {
	assert.Equal(t, FormModeEdit, resolveFormMode(FormModeEdit, FormModeCreate))
	assert.Equal(t, FormModeEdit, resolveFormMode(" edit ", FormModeCreate))
	assert.Equal(t, FormModeCreate, resolveFormMode("", FormModeCreate))
	assert.Equal(t, FormModeCreate, resolveFormMode(42, FormModeCreate))
}

func TestBasePageData(t *testing.T) {
	anon := basePageData(httptest.NewRequest(http.MethodGet, "/login", nil), PageMeta{PageTitle: "Sign in"})
	assert.Equal(t, "Sign in | Store Admin", anon["Title"])
	assert.Equal(t, false, anon["IsAuthenticated"])
	assert.NotContains(t, anon, "User")

	r := signedInRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	data := basePageData(r, PageMeta{Title: "Dashboard", CurrentPage: PageDashboard})
	assert.Equal(t, true, data["IsAuthenticated"])
	assert.Equal(t, PageDashboard, data["CurrentPage"])
	assert.Contains(t, data, "User")
}

func withRouteID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	id, ok := pathID(withRouteID(r, "42"), "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, ok := pathID(withRouteID(r, bad), "id")
		assert.False(t, ok, bad)
	}
}

func TestHandleDelete_PlainForm(t *testing.T) {
	h := &UIHandlers{Logger: discardLogger()}

	t.Run("success flashes the backend message", func(t *testing.T) {
		var deleted int64
		rec := httptest.NewRecorder()
		r := withRouteID(httptest.NewRequest(http.MethodPost, "/brands/5/delete", nil), "5")

		h.handleDelete(rec, r, deleteHandlerOpts{
			Entity: "Brand",
			Delete: func(_ context.Context, id int64) (string, error) {
				deleted = id
				return "", nil
			},
			RedirectPath: brandsPath,
		})

		assert.Equal(t, int64(5), deleted)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, brandsPath, rec.Header().Get("Location"))
		flash := flashFrom(t, rec)
		assert.Equal(t, "Brand deleted successfully", flash.Message)
		assert.Equal(t, toastSuccess, flash.Type)
	})

	t.Run("failure flashes the error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := withRouteID(httptest.NewRequest(http.MethodPost, "/brands/5/delete", nil), "5")

		h.handleDelete(rec, r, deleteHandlerOpts{
			Entity: "Brand",
			Delete: func(context.Context, int64) (string, error) {
				return "", errors.New("boom")
			},
			RedirectPath: brandsPath,
		})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		flash := flashFrom(t, rec)
		assert.Equal(t, "Unable to delete brand.", flash.Message)
		assert.Equal(t, toastError, flash.Type)
	})
}

func TestHandleToggle(t *testing.T) {
	h := &UIHandlers{Logger: discardLogger()}

	rec := httptest.NewRecorder()
	r := withRouteID(httptest.NewRequest(http.MethodPost, "/banners/3/toggle", nil), "3")
	r.Header.Set("Hx-Request", "true")
	h.handleToggle(rec, r, "Banner", bannersPath, func(context.Context, int64) (string, error) {
		return "", apperrors.FromStatus(http.StatusNotFound, "Banner not found", nil)
	})

	assert.Equal(t, bannersPath, rec.Header().Get("Hx-Redirect"))
	assert.Equal(t, "Banner not found", flashFrom(t, rec).Message)
}

// flashFrom decodes the flash cookie a response set.
func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) flashCookie {
	t.Helper()
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	f := popFlash(httptest.NewRecorder(), next, "")
	require.NotNil(t, f, "response set no flash")
	return flashCookie{Message: f.Message, Type: f.Type}
}
