package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/target/storefront-admin/internal/http/ui/viewmodel"
)

const flashMaxAge = 60

type flashCookie struct {
	Message string `json:"m"`
	Type    string `json:"t"`
}

// setFlash stores a one-shot message for the page the browser lands on
// after a redirect.
func setFlash(w http.ResponseWriter, r *http.Request, domain string, f viewmodel.Flash) {
	if f.Message == "" {
		return
	}
	raw, err := json.Marshal(flashCookie{Message: f.Message, Type: f.Type})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   flashMaxAge,
	})
}

// popFlash reads and clears the flash cookie. Garbled values are dropped.
func popFlash(w http.ResponseWriter, r *http.Request, domain string) *viewmodel.Flash {
	value := readCookie(r, FlashCookieName)
	if value == "" {
		return nil
	}
	clearCookie(w, r, domain, FlashCookieName)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var fc flashCookie
	if err := json.Unmarshal(raw, &fc); err != nil || fc.Message == "" {
		return nil
	}
	if fc.Type == "" {
		fc.Type = toastSuccess
	}
	return &viewmodel.Flash{Message: fc.Message, Type: fc.Type}
}

// clearCookie expires a cookie, mirroring the attributes it was set with.
func clearCookie(w http.ResponseWriter, r *http.Request, domain, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
