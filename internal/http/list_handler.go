package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/storefront-admin/internal/http/ui/viewmodel"
)

// FilterParser parses list filters from the query string. An error is shown
// in place of the list.
type FilterParser[F any] func(url.Values) (F, error)

// ListFetcher fetches the complete list for the parsed filters.
type ListFetcher[T any, F any] func(ctx context.Context, filters F) ([]T, error)

// DataEnricher adds page-specific data once the page of items is known.
type DataEnricher[T any, F any] func(builder *TemplateDataBuilder, items []T, filters F)

// SearchFilter is the filter every list accepts: the search box value.
type SearchFilter struct {
	Search string
}

// ParseSearchFilter reads ?search=.
func ParseSearchFilter(q url.Values) (SearchFilter, error) {
	return SearchFilter{Search: strings.TrimSpace(q.Get("search"))}, nil
}

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T any, F any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request

	FilterParser FilterParser[F]
	Fetch        ListFetcher[T, F]
	EnrichData   DataEnricher[T, F]

	// BasePath is the list URL pagination links are built on.
	BasePath string
	PageMeta PageMeta
	// ItemsKey is the template data key for the items ("Users", "Brands").
	ItemsKey string
	// ErrorMessage is shown when the fetch fails without a message of its own.
	ErrorMessage string
}

// HandleList renders a searchable, paginated list. The backend returns the
// whole filtered collection; HandleList slices out the requested page.
func HandleList[T, F any](opts ListHandlerOpts[T, F]) {
	if opts.W == nil || opts.R == nil || opts.Handler == nil || opts.Fetch == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return
	}

	var filters F
	if opts.FilterParser != nil {
		var err error
		filters, err = opts.FilterParser(opts.R.URL.Query())
		if err != nil {
			opts.renderListError(filters, "Invalid filter parameters: "+err.Error())
			return
		}
	}

	items, err := opts.Fetch(opts.R.Context(), filters)
	if err != nil {
		opts.Handler.logger().WarnContext(opts.R.Context(), "list fetch failed",
			"page", opts.PageMeta.CurrentPage, "error", err)
		_, msg := presentError(err, opts.ErrorMessage)
		opts.renderListError(filters, msg)
		return
	}

	pageItems, pagination := paginateSlice(items, opts.BasePath, opts.R)
	builder := NewTemplateData(opts.R, opts.PageMeta).
		WithPagination(pagination).
		WithSearch(opts.R.URL.Query().Get("search")).
		With("Filters", filters).
		With(opts.ItemsKey, pageItems)

	if opts.EnrichData != nil {
		opts.EnrichData(builder, pageItems, filters)
	}

	opts.Handler.renderDashboardPage(opts.W, opts.R, builder.Build())
}

func (lh *ListHandlerOpts[T, F]) renderListError(filters F, errMsg string) {
	page, pageSize := getPageParams(lh.R.URL.Query())
	builder := NewTemplateData(lh.R, lh.PageMeta).
		WithPagination(viewmodel.Pagination{Page: page, PageSize: pageSize}).
		WithSearch(lh.R.URL.Query().Get("search")).
		With("Filters", filters).
		With(lh.ItemsKey, []T{})
	if errMsg != "" {
		builder.WithError(errMsg)
	}
	if lh.EnrichData != nil {
		lh.EnrichData(builder, nil, filters)
	}
	lh.Handler.renderDashboardPage(lh.W, lh.R, builder.Build())
}
