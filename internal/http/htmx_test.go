package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.False(t, IsHTMX(r))
	assert.False(t, WantsPartial(r))

	r.Header.Set("Hx-Request", "TRUE")
	assert.True(t, IsHTMX(r))
	assert.True(t, WantsPartial(r))
}

func TestCurrentPath(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/brands/3/delete", nil)
	r.Header.Set("Hx-Current-Url", "http://admin.test/brands?page=2")
	assert.Equal(t, "/brands/3/delete", CurrentPath(r), "plain requests use their own path")

	r.Header.Set("Hx-Request", "true")
	assert.Equal(t, "/brands", CurrentPath(r))

	r.Header.Set("Hx-Current-Url", "::bad")
	assert.Equal(t, "/brands/3/delete", CurrentPath(r))
}

func TestSetHXTrigger_MergesEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	SetHXTrigger(rec, "nav:activate", map[string]string{"section": "brands"})
	SetHXTrigger(rec, "refresh", nil)
	HTMX(rec).Trigger("showToast", toastPayload{Message: "Saved", Type: toastSuccess})

	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("Hx-Trigger")), &events))
	assert.Equal(t, true, events["refresh"])
	assert.Equal(t, map[string]any{"section": "brands"}, events["nav:activate"])
	assert.Equal(t, map[string]any{"message": "Saved", "type": "success"}, events["showToast"])
}

func TestSetHXTrigger_ReplacesGarbledHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Hx-Trigger", "not-json")

	SetHXTrigger(rec, "refresh", nil)

	assert.JSONEq(t, `{"refresh":true}`, rec.Header().Get("Hx-Trigger"))
}

func TestRedirect(t *testing.T) {
	t.Run("htmx", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/brands", nil)
		r.Header.Set("Hx-Request", "true")
		rec := httptest.NewRecorder()

		redirect(rec, r, "/brands")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/brands", rec.Header().Get("Hx-Redirect"))
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("plain", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/brands", nil)
		rec := httptest.NewRecorder()

		redirect(rec, r, "/brands")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/brands", rec.Header().Get("Location"))
	})
}
