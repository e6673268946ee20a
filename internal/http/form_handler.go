package httpx

import (
	"context"
	"net/http"
	"strings"
)

// FormParser parses a submission into the form model and returns local
// field errors. The form model is what the page re-renders with.
type FormParser[F any] func(r *http.Request) (F, map[string]string)

// FormSaver sends a parsed form to the backend and returns its message.
type FormSaver[F any] func(ctx context.Context, form F) (string, error)

// FormRenderer renders the form page with the given data. It is expected to
// add select options before rendering.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[F any] struct {
	Handler  *UIHandlers
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Parser   FormParser[F]
	Save     FormSaver[F]
	Renderer FormRenderer
	// Entity names the saved thing in default messages ("Category").
	Entity     string
	SuccessURL string
	PageMeta   PageMeta
	// ExtraData is passed to the template on error (ids, parent names).
	ExtraData map[string]any
}

// HandleForm processes create and update submissions: parse, validate
// locally, save, then flash and redirect on success or re-render with
// inline errors on failure.
func HandleForm[F any](opts FormHandlerOpts[F]) {
	if opts.Parser == nil || opts.Save == nil || opts.Renderer == nil || opts.Handler == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	switch opts.Mode {
	case FormModeEdit, FormModeCreate:
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return
	}

	form, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(form, fieldErrors, nil)
		return
	}

	msg, err := opts.Save(opts.R.Context(), form)
	if err != nil {
		opts.Handler.logger().InfoContext(opts.R.Context(), "form save rejected",
			"entity", opts.Entity, "mode", string(opts.Mode), "error", err)
		opts.renderFormError(form, nil, err)
		return
	}

	verb := "created"
	if opts.Mode == FormModeEdit {
		verb = "updated"
	}
	opts.Handler.succeed(opts.W, opts.R, orDefault(msg, opts.Entity+" "+verb+" successfully"), opts.SuccessURL)
}

func (fh FormHandlerOpts[F]) renderFormError(form F, fieldErrors map[string]string, err error) {
	data := map[string]any{
		"Mode": string(fh.Mode),
		"Form": form,
	}
	for k, v := range fh.ExtraData {
		data[k] = v
	}
	RenderError(ErrorOpts{
		W:           fh.W,
		R:           fh.R,
		Err:         err,
		FieldErrors: fieldErrors,
		Renderer:    ErrorRenderer(fh.Renderer),
		PageMeta:    fh.PageMeta,
		Data:        data,
		Fallback:    "Unable to save " + strings.ToLower(fh.Entity) + ". Please try again.",
		ShowToast:   err != nil,
	})
}
