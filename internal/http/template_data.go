package httpx

import (
	"net/http"

	"github.com/target/storefront-admin/internal/http/ui/viewmodel"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds pagination metadata under "Pagination".
func (b *TemplateDataBuilder) WithPagination(p viewmodel.Pagination) *TemplateDataBuilder {
	b.data["Pagination"] = p
	return b
}

// WithSearch echoes the search box value back to the page.
func (b *TemplateDataBuilder) WithSearch(search string) *TemplateDataBuilder {
	b.data["Search"] = search
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// paginateSlice pages through a fully fetched list. The backend returns
// admin collections as plain arrays, so paging happens here.
func paginateSlice[T any](items []T, basePath string, r *http.Request) ([]T, viewmodel.Pagination) {
	page, pageSize := getPageParams(r.URL.Query())
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	pageItems := items[start:end]

	p := viewmodel.Pagination{
		Page:       page,
		PageSize:   pageSize,
		HasPrev:    page > 1,
		HasNext:    end < total,
		TotalCount: total,
		TotalPages: totalPages,
	}
	if len(pageItems) > 0 {
		p.StartIndex = start + 1
		p.EndIndex = end
	}
	q := r.URL.Query()
	if p.HasPrev {
		p.PrevURL = buildPageURL(basePath, q, pageOpts{Page: page - 1, PageSize: pageSize})
	}
	if p.HasNext {
		p.NextURL = buildPageURL(basePath, q, pageOpts{Page: page + 1, PageSize: pageSize})
	}
	return pageItems, p
}
