package httpx

import (
	"context"
	"errors"
	"maps"
	"net/http"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

const (
	errMsgFixBelow    = "Please fix the errors below."
	errMsgUnexpected  = "An unexpected error occurred. Please try again."
	errMsgCanceled    = "The request was canceled."
	errMsgTimeout     = "The server took too long to respond. Please try again."
	errMsgUnavailable = "The store API is unavailable. Please try again shortly."
)

// presentError turns a failed operation into what a page shows: inline
// field messages and one banner or toast message.
//
// Authorization errors from the backend present nothing because the
// forced-logout redirect replaces the page. The local privilege check has no
// status and is shown like any other message.
func presentError(err error, fallback string) (map[string]string, string) {
	if err == nil {
		return nil, ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return nil, errMsgCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return nil, errMsgTimeout
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return nil, fallback
	}

	switch appErr.Code {
	case apperrors.ErrCodeAuthorization:
		if appErr.Status == http.StatusUnauthorized {
			return nil, ""
		}
		return nil, apperrors.Message(err, fallback)
	case apperrors.ErrCodeValidation:
		fields := apperrors.FieldMessages(err)
		msg := fields[apperrors.NonFieldErrors]
		delete(fields, apperrors.NonFieldErrors)
		switch {
		case msg != "":
		case appErr.Field == "" && appErr.Message != "":
			msg = appErr.Message
		default:
			msg = errMsgFixBelow
		}
		return fields, msg
	case apperrors.ErrCodeNetwork:
		return nil, errMsgUnavailable
	case apperrors.ErrCodeInternal:
		return nil, fallback
	default:
		return nil, apperrors.Message(err, fallback)
	}
}

// DetermineErrorStatus picks the status a re-rendered page is sent with.
// Zero means the default 200, which htmx swaps.
func DetermineErrorStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return 0
	}
}

// ErrorRenderer renders a page with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W   http.ResponseWriter
	R   *http.Request
	Err error
	// FieldErrors are local validation messages (field name -> message).
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data carries form values and select options to re-render with.
	Data map[string]any
	// Fallback is shown when the error carries no message of its own.
	Fallback string
	// StatusCode overrides DetermineErrorStatus when non-zero.
	StatusCode int
	// ShowToast also raises the message as a toast on htmx requests.
	ShowToast bool
}

// RenderError re-renders a page with error state: inline field messages,
// an error banner, and optionally a toast.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	fallback := opts.Fallback
	if fallback == "" {
		fallback = errMsgUnexpected
	}
	fieldErrors, msg := presentError(opts.Err, fallback)
	if len(opts.FieldErrors) > 0 {
		if fieldErrors == nil {
			fieldErrors = make(map[string]string, len(opts.FieldErrors))
		}
		maps.Copy(fieldErrors, opts.FieldErrors)
		if msg == "" {
			msg = errMsgFixBelow
		}
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)
	for k, v := range opts.Data {
		builder.With(k, v)
	}
	builder.WithFieldErrors(fieldErrors)
	if msg != "" {
		builder.WithError(msg)
	}

	if opts.ShowToast && msg != "" && IsHTMX(opts.R) {
		triggerToast(opts.W, msg, toastError)
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err)
		if status == 0 && len(fieldErrors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}
	// htmx does not swap 4xx responses, so partial re-renders stay 200.
	if status != 0 && !IsHTMX(opts.R) {
		opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		opts.W.WriteHeader(status)
	}

	opts.Renderer(opts.W, opts.R, builder.Build())
}
