package httpx

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/http/ui/viewmodel"
	"github.com/target/storefront-admin/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	toastSuccess = "success"
	toastError   = "error"
)

// UIHandlers serves browser-facing routes. Per-request state (session,
// catalog) comes from the request context, so one UIHandlers serves every
// browser.
type UIHandlers struct {
	T            *TemplateRenderer
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// catalog returns the request's catalog. LoadSession guarantees one on
// every route behind RequireSession.
func (h *UIHandlers) catalog(r *http.Request) *service.Catalog {
	return catalogFromContext(r.Context())
}

// getPageParams parses pagination params from URL query with sane defaults.
func getPageParams(q url.Values) (int, int) {
	page := 1
	pageSize := defaultPageSize
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if s := q.Get("page_size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxPageSize {
			pageSize = n
		}
	}
	return page, pageSize
}

// pageOpts represents pagination options for list views.
type pageOpts struct {
	Page     int
	PageSize int
}

// buildPageURL returns a URL with page and page_size set, preserving other
// non-blank query params.
func buildPageURL(basePath string, q url.Values, p pageOpts) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") || len(v) == 0 {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	qq.Set("page", strconv.Itoa(p.Page))
	qq.Set("page_size", strconv.Itoa(p.PageSize))
	return basePath + "?" + qq.Encode()
}

// pathID parses a numeric route parameter. Zero, negative and malformed
// ids report false.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type toastPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", toastPayload{Message: message, Type: strings.TrimSpace(toastType)})
}

// orDefault returns msg, or fallback when the backend sent no message.
func orDefault(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// succeed flashes a success message and sends the browser to target.
func (h *UIHandlers) succeed(w http.ResponseWriter, r *http.Request, message, target string) {
	setFlash(w, r, h.CookieDomain, viewmodel.Flash{Message: message, Type: toastSuccess})
	redirect(w, r, target)
}

// fail flashes an error message and sends the browser to target.
func (h *UIHandlers) fail(w http.ResponseWriter, r *http.Request, message, target string) {
	if message == "" {
		redirect(w, r, target)
		return
	}
	setFlash(w, r, h.CookieDomain, viewmodel.Flash{Message: message, Type: toastError})
	redirect(w, r, target)
}

// deleteHandlerOpts encapsulates common delete-handling behavior for UI endpoints.
type deleteHandlerOpts struct {
	// Entity names the thing deleted in the default message ("Brand").
	Entity string
	// Param is the route parameter holding the id (default "id").
	Param string
	Delete       func(ctx context.Context, id int64) (string, error)
	RedirectPath string
}

// handleDelete coordinates delete flows shared across UI handlers.
//
// htmx requests get a toast. Success returns an empty 200 body so the row
// swaps out; failure returns 204 so the row stays. Plain form posts get a
// flash and a 303 back to the list.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteHandlerOpts) {
	param := opts.Param
	if param == "" {
		param = "id"
	}
	id, ok := pathID(r, param)
	if !ok {
		h.NotFound(w, r)
		return
	}

	msg, err := opts.Delete(r.Context(), id)
	if err != nil {
		_, errMsg := presentError(err, "Unable to delete "+strings.ToLower(opts.Entity)+".")
		h.logger().WarnContext(r.Context(), "delete failed",
			"entity", opts.Entity, "id", id, "error", err)
		if IsHTMX(r) {
			triggerToast(w, errMsg, toastError)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.fail(w, r, errMsg, opts.RedirectPath)
		return
	}

	msg = orDefault(msg, opts.Entity+" deleted successfully")
	if IsHTMX(r) {
		triggerToast(w, msg, toastSuccess)
		w.WriteHeader(http.StatusOK)
		return
	}
	h.succeed(w, r, msg, opts.RedirectPath)
}

// FormFrameOpts captures the parameters required to normalize common form data.
type FormFrameOpts struct {
	R           *http.Request
	Data        map[string]any
	DefaultMode FormMode
	MetaForMode func(FormMode) PageMeta
}

// prepareFormFrame normalizes common form rendering fields (Errors, Mode, base layout).
// Returns the hydrated data map and the resolved form mode for further customization.
func prepareFormFrame(opts FormFrameOpts) (map[string]any, FormMode) {
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok || data["Errors"] == nil {
		data["Errors"] = map[string]string{}
	}

	mode := resolveFormMode(data["Mode"], opts.DefaultMode)
	data["Mode"] = string(mode)

	if opts.MetaForMode != nil && opts.R != nil {
		base := basePageData(opts.R, opts.MetaForMode(mode))
		maps.Copy(base, data)
		data = base
	}

	return data, mode
}

// resolveFormMode coerces assorted Mode representations to a FormMode value.
func resolveFormMode(raw any, fallback FormMode) FormMode {
	switch v := raw.(type) {
	case FormMode:
		if v != "" {
			return v
		}
	case string:
		candidate := FormMode(strings.TrimSpace(v))
		if candidate != "" {
			return candidate
		}
	}
	return fallback
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	title := meta.Title
	if title == "" {
		title = meta.PageTitle
	}
	layout := viewmodel.Layout{
		Title:       title + " | Store Admin",
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Nav:         viewmodel.Sidebar(),
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		if identity := session.Identity(); identity != nil {
			layout.IsAuthenticated = true
			layout.User = &viewmodel.User{
				Name:    identity.DisplayName(),
				Email:   identity.Email,
				Initial: identity.Initial(),
			}
		}
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CSRFToken":       layout.CSRFToken,
		"Nav":             layout.Nav,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta PageMeta
	// Fetch fills page data. A not-found error renders the 404 page.
	Fetch func(ctx context.Context, data map[string]any) error
	// ErrorMessage replaces the generic banner when Fetch fails.
	ErrorMessage string
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			if apperrors.IsNotFound(err) {
				h.NotFound(w, r)
				return
			}
			h.logger().WarnContext(r.Context(), "page fetch failed",
				"page", spec.Meta.CurrentPage, "error", err)
			fallback := spec.ErrorMessage
			if fallback == "" {
				fallback = errMsgUnexpected
			}
			_, msg := presentError(err, fallback)
			markPageError(data, msg)
		}
	}
	h.renderDashboardPage(w, r, data)
}

func markPageError(data map[string]any, msg string) {
	if msg == "" {
		return
	}
	data["Error"] = true
	data["ErrorMessage"] = msg
}

// renderDashboardPage renders a page with htmx partial support. Full loads
// render the layout; htmx loads render the content template plus the
// document title and an out-of-band header title.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if h.T == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	flash := popFlash(w, r, h.CookieDomain)

	if !WantsPartial(r) {
		if flash != nil {
			data["Flash"] = flash
		}
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	layout := extractLayoutInfo(data)

	var body bytes.Buffer
	body.WriteString(`<title>` + html.EscapeString(layout.Title) + `</title>`)
	body.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`)
	if err := h.T.RenderTo(&body, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path, "section": NavSection(layout.CurrentPage)})
	if flash != nil {
		triggerToast(w, flash.Message, flash.Type)
	}
	if _, err := body.WriteTo(w); err != nil {
		h.logger().Error("failed to write partial response", "error", err)
	}
}

func extractLayoutInfo(data map[string]any) viewmodel.Layout {
	layout := viewmodel.Layout{}
	if v, ok := data["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := data["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := data["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
