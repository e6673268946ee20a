package backend

import (
	"encoding/json"
	"time"

	"github.com/target/storefront-admin/internal/domain/model"
	apperrors "github.com/target/storefront-admin/internal/errors"
)

// Order payloads differ between the list and detail endpoints and across
// backend versions; these expressions pick the first populated variant.
const (
	exprOrderCustomer = "customer_name || customer.name || customer.full_name || user.name || shipping_address.full_name || shipping.full_name"
	exprOrderEmail    = "email || customer_email || customer.email || user.email"
	exprOrderTotal    = "total_price || total || total_amount"
	exprOrderCount    = "items_count || length(items || `[]`)"
	exprBilling       = "billing_address || billing"
	exprShipping      = "shipping_address || shipping"
)

var addressExprs = struct {
	name, phone, line, city, state, postal, country string
}{
	name:    "full_name || name",
	phone:   "phone || phone_number",
	line:    "address || address_line1 || street",
	city:    "city",
	state:   "state || region",
	postal:  "postal_code || zip_code || zip",
	country: "country",
}

// DecodeOrders converts a list payload into orders.
func DecodeOrders(raw json.RawMessage) ([]model.Order, error) {
	var items []json.RawMessage
	if err := ExtractList(raw, &items); err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(items))
	for _, item := range items {
		o, err := DecodeOrder(item)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// DecodeOrder flattens one order payload.
func DecodeOrder(raw json.RawMessage) (model.Order, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Order{}, apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unexpected order.")
	}

	var base struct {
		ID            int64             `json:"id"`
		OrderNumber   string            `json:"order_number"`
		Status        string            `json:"status"`
		PaymentStatus string            `json:"payment_status"`
		Subtotal      model.Decimal     `json:"subtotal"`
		ShippingCost  model.Decimal     `json:"shipping_cost"`
		CreatedAt     *time.Time        `json:"created_at"`
		Items         []model.OrderItem `json:"items"`
		Notes         string            `json:"notes"`
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return model.Order{}, apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unexpected order.")
	}

	o := model.Order{
		ID:             base.ID,
		OrderNumber:    base.OrderNumber,
		CustomerName:   searchString(doc, exprOrderCustomer),
		CustomerEmail:  searchString(doc, exprOrderEmail),
		Status:         base.Status,
		PaymentStatus:  base.PaymentStatus,
		ItemsCount:     searchInt(doc, exprOrderCount),
		TotalPrice:     model.Decimal(searchString(doc, exprOrderTotal)),
		Subtotal:       base.Subtotal,
		ShippingCost:   base.ShippingCost,
		CreatedAt:      base.CreatedAt,
		Items:          base.Items,
		Billing:        decodeAddress(doc, exprBilling),
		Shipping:       decodeAddress(doc, exprShipping),
		Notes:          base.Notes,
		StatusChoices:  choiceValues(doc["status_choices"]),
		PaymentChoices: choiceValues(doc["payment_status_choices"]),
	}
	if o.OrderNumber == "" && o.ID != 0 {
		o.OrderNumber = "#" + searchString(doc, "id")
	}
	if o.CustomerName == "" {
		o.CustomerName = o.CustomerEmail
	}
	return o, nil
}

func decodeAddress(doc any, expr string) model.Address {
	var sub map[string]any
	if err := extractFrom(doc, expr, &sub); err != nil || sub == nil {
		return model.Address{}
	}
	return model.Address{
		FullName:   searchString(sub, addressExprs.name),
		Phone:      searchString(sub, addressExprs.phone),
		Address:    searchString(sub, addressExprs.line),
		City:       searchString(sub, addressExprs.city),
		State:      searchString(sub, addressExprs.state),
		PostalCode: searchString(sub, addressExprs.postal),
		Country:    searchString(sub, addressExprs.country),
	}
}

// choiceValues accepts ["a", ...], [["a","A"], ...] or [{"value":"a"}, ...].
func choiceValues(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case []any:
			if len(t) > 0 {
				if s, ok := t[0].(string); ok {
					out = append(out, s)
				}
			}
		case map[string]any:
			if s, ok := t["value"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
