package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/http/ui/viewmodel"
	"github.com/target/storefront-admin/internal/http/validation"
)

const (
	errMsgLoginFailed = "Login failed. Please check your credentials."
	msgWelcomeBack    = "Welcome back!"
	msgSignedOut      = "You have been signed out."
)

// loginForm is what the login page re-renders with. The password is never
// echoed back.
type loginForm struct {
	Email       string
	RedirectURI string
}

// LoginPage renders the sign-in form. Signed-in browsers go straight to
// their destination.
// GET /login?redirect_uri=<optional_redirect>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if IsAuthenticated(r.Context()) {
		redirect(w, r, redirectURI)
		return
	}
	h.renderLogin(w, r, loginForm{RedirectURI: redirectURI}, nil, "", http.StatusOK)
}

// Login signs the browser in.
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderLogin(w, r, loginForm{RedirectURI: "/"}, nil, errMsgLoginFailed, http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:       formString(r, "email"),
		RedirectURI: safeRedirectPath(formString(r, "redirect_uri")),
	}
	password := r.PostFormValue("password")

	v := validation.New().
		Validate("email", form.Email, validation.Required("Email", 254), validation.Email("Email")).
		Validate("password", password, validation.Required("Password", 1024))
	if !v.Valid() {
		h.renderLogin(w, r, form, v.Errors(), errMsgFixBelow, http.StatusUnprocessableEntity)
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		h.renderLogin(w, r, form, nil, errMsgUnexpected, http.StatusInternalServerError)
		return
	}

	identity, err := session.Login(r.Context(), form.Email, password)
	if err != nil {
		fields, msg := presentLoginError(err)
		if msg == "" || (msg == errMsgFixBelow && len(fields) == 0) {
			msg = errMsgLoginFailed
		}
		status := DetermineErrorStatus(err)
		if status == 0 {
			status = http.StatusUnauthorized
		}
		h.logger().InfoContext(r.Context(), "login rejected", "error", err)
		h.renderLogin(w, r, form, fields, msg, status)
		return
	}

	h.logger().InfoContext(r.Context(), "admin signed in", "user_id", identity.ID)
	h.succeed(w, r, msgWelcomeBack, form.RedirectURI)
}

// presentLoginError is presentError without the forced-logout silence: a
// 401 from the login endpoint is a rejection of the submitted credentials,
// and its message and field errors belong on the form.
func presentLoginError(err error) (map[string]string, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusUnauthorized {
		return presentError(err, errMsgLoginFailed)
	}
	fields := apperrors.FieldMessages(err)
	msg := fields[apperrors.NonFieldErrors]
	delete(fields, apperrors.NonFieldErrors)
	if msg == "" {
		msg = apperrors.Message(err, errMsgLoginFailed)
	}
	return fields, msg
}

// Logout clears the browser's credential. Logging out twice is harmless.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		if err := session.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
			h.fail(w, r, "Unable to sign out. Please try again.", "/")
			return
		}
	}
	setFlash(w, r, h.CookieDomain, viewmodel.Flash{Message: msgSignedOut, Type: toastSuccess})
	redirect(w, r, LoginPath)
}

func (h *UIHandlers) renderLogin(
	w http.ResponseWriter,
	r *http.Request,
	form loginForm,
	fieldErrors map[string]string,
	msg string,
	status int,
) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	data := map[string]any{
		"Title":       "Sign in | Store Admin",
		"CSRFToken":   GetCSRFToken(r),
		"Form":        form,
		"RedirectURI": form.RedirectURI,
		"Errors":      fieldErrors,
	}
	if msg != "" {
		data["Error"] = true
		data["ErrorMessage"] = msg
	}
	if flash := popFlash(w, r, h.CookieDomain); flash != nil {
		data["Flash"] = flash
	}

	if h.T == nil {
		http.Error(w, msg, status)
		return
	}
	// htmx only swaps 2xx responses.
	if status != http.StatusOK && !IsHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := h.T.RenderLogin(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "login render")
	}
}
