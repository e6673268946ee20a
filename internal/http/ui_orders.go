package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
)

const (
	ordersPath             = "/orders"
	errMsgUnableLoadOrders = "Unable to load orders"
	errMsgUnableLoadOrder  = "Unable to load order"
	errMsgUpdateStatus     = "Unable to update order status."
)

func orderPath(id int64) string { return ordersPath + "/" + strconv.FormatInt(id, 10) }

// OrderFilter narrows the order list by search box and status.
type OrderFilter struct {
	Search string
	Status string
}

// ParseOrderFilter reads ?search= and ?status=. Unknown statuses are rejected.
func ParseOrderFilter(q url.Values) (OrderFilter, error) {
	f := OrderFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Status: strings.ToLower(strings.TrimSpace(q.Get("status"))),
	}
	if f.Status != "" && !slices.Contains(model.OrderStatuses(), f.Status) {
		status := f.Status
		f.Status = ""
		return f, fmt.Errorf("unknown status %q", status)
	}
	return f, nil
}

// Orders lists orders, filtered by ?search= and ?status=.
func (h *UIHandlers) Orders(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Order, OrderFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseOrderFilter,
		Fetch: func(ctx context.Context, f OrderFilter) ([]model.Order, error) {
			return h.catalog(r).Admin().Orders(ctx, f.Search, f.Status)
		},
		EnrichData: func(b *TemplateDataBuilder, _ []model.Order, _ OrderFilter) {
			b.With("StatusOptions", model.OrderStatuses())
		},
		BasePath:     ordersPath,
		PageMeta:     PageMeta{Title: "Orders", PageTitle: "Orders", CurrentPage: PageOrders},
		ItemsKey:     "Orders",
		ErrorMessage: errMsgUnableLoadOrders,
	})
}

// orderStatusForm is the status update form on the order page.
type orderStatusForm struct {
	model.OrderStatusUpdate
}

// Order renders one order with its items, addresses and status form.
// GET /orders/{id}.
func (h *UIHandlers) Order(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:         orderMeta(""),
		ErrorMessage: errMsgUnableLoadOrder,
		Fetch: func(ctx context.Context, data map[string]any) error {
			order, err := h.catalog(r).Admin().Order(ctx, id)
			if err != nil {
				return err
			}
			fillOrderData(data, order, orderStatusForm{model.OrderStatusUpdate{
				Status:        order.Status,
				PaymentStatus: order.PaymentStatus,
				Notes:         order.Notes,
			}})
			return nil
		},
	})
}

func orderMeta(number string) PageMeta {
	title := "Order"
	if number != "" {
		title = "Order #" + number
	}
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageOrder}
}

func fillOrderData(data map[string]any, order model.Order, form orderStatusForm) {
	meta := orderMeta(order.OrderNumber)
	data["Title"] = meta.Title + " | Store Admin"
	data["PageTitle"] = meta.PageTitle
	data["Order"] = order
	data["Form"] = form
}

// OrderStatus updates an order's status, payment status and notes.
// POST /orders/{id}/status.
func (h *UIHandlers) OrderStatus(w http.ResponseWriter, r *http.Request) {
	order, id, ok := loadRecord(h, w, r, "id", ordersPath, h.catalog(r).Admin().Order)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		h.fail(w, r, errMsgReadForm, orderPath(id))
		return
	}

	form := orderStatusForm{model.OrderStatusUpdate{
		Status:        strings.ToLower(formString(r, "status")),
		PaymentStatus: strings.ToLower(formString(r, "payment_status")),
		Notes:         formString(r, "notes"),
	}}
	v := validation.New().
		Validate("status", form.Status, validation.OneOf("Status", order.StatusOptions())).
		Validate("payment_status", form.PaymentStatus, validation.OneOf("Payment status", order.PaymentOptions())).
		Validate("notes", form.Notes, validation.Optional("Notes", 2000))

	var (
		msg string
		err error
	)
	if v.Valid() {
		msg, err = h.catalog(r).UpdateOrderStatus(r.Context(), order, form.OrderStatusUpdate)
		if err == nil {
			h.succeed(w, r, orDefault(msg, "Order status updated successfully"), orderPath(id))
			return
		}
		h.logger().InfoContext(r.Context(), "order status update rejected", "order_id", id, "error", err)
	}

	RenderError(ErrorOpts{
		W:           w,
		R:           r,
		Err:         err,
		FieldErrors: v.Errors(),
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			fillOrderData(data, order, form)
			h.renderDashboardPage(w, r, data)
		},
		PageMeta:  orderMeta(order.OrderNumber),
		Fallback:  errMsgUpdateStatus,
		ShowToast: err != nil,
	})
}
