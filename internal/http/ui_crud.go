package httpx

import (
	"context"
	"net/http"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

const (
	errMsgFormOptions = "Unable to load form options."
	errMsgReadForm    = "Unable to read the submitted form."

	// formErrorKey holds form-level problems found before any field is read.
	formErrorKey = "form"
)

// formMeta builds the PageMeta function shared by an entity's create and
// edit pages ("Add Brand", "Edit Brand").
func formMeta(entity, page string) func(FormMode) PageMeta {
	return func(mode FormMode) PageMeta {
		title := "Add " + entity
		if mode == FormModeEdit {
			title = "Edit " + entity
		}
		return PageMeta{Title: title, PageTitle: title, CurrentPage: page}
	}
}

// formOptionsLoader adds select options (parents, brands, products) to a
// form page.
type formOptionsLoader func(ctx context.Context, data map[string]any) error

// renderForm renders a create or edit page. A failure to load options is
// shown as a banner; the form still renders.
func (h *UIHandlers) renderForm(
	w http.ResponseWriter,
	r *http.Request,
	data map[string]any,
	meta func(FormMode) PageMeta,
	options formOptionsLoader,
) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: meta,
	})
	if options != nil {
		if err := options(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "load form options", "page", data["CurrentPage"], "error", err)
			if _, shown := data["ErrorMessage"]; !shown {
				_, msg := presentError(err, errMsgFormOptions)
				markPageError(data, msg)
			}
		}
	}
	h.renderDashboardPage(w, r, data)
}

// loadRecord fetches the record named by the route parameter for an edit
// page or action. On failure it has already responded: unknown ids get the
// 404 page, other errors flash and return to listPath.
func loadRecord[T any](
	h *UIHandlers,
	w http.ResponseWriter,
	r *http.Request,
	param, listPath string,
	get func(ctx context.Context, id int64) (T, error),
) (T, int64, bool) {
	var zero T
	id, ok := pathID(r, param)
	if !ok {
		h.NotFound(w, r)
		return zero, 0, false
	}
	rec, err := get(r.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return zero, 0, false
		}
		h.logger().WarnContext(r.Context(), "load record", "path", r.URL.Path, "error", err)
		_, msg := presentError(err, errMsgUnexpected)
		h.fail(w, r, msg, listPath)
		return zero, 0, false
	}
	return rec, id, true
}

// readFailure is the field error map returned when the body cannot be parsed.
func readFailure() map[string]string {
	return map[string]string{formErrorKey: errMsgReadForm}
}

// idOrZero returns the route id for updates and zero for creates.
func idOrZero(r *http.Request, param string) int64 {
	id, _ := pathID(r, param)
	return id
}
