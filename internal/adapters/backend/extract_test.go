package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/storefront-admin/internal/domain/model"
	mockauth "github.com/target/storefront-admin/internal/mocks/auth"
	"github.com/target/storefront-admin/internal/testutil"
)

func TestExtractList_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "bare array", raw: `[{"id":1},{"id":2}]`, want: []int64{1, 2}},
		{name: "paginated", raw: `{"count":1,"results":[{"id":7}]}`, want: []int64{7}},
		{name: "values wrapper", raw: `{"id":3,"values":[{"id":9}]}`, want: []int64{9}},
		{name: "empty results", raw: `{"results":[]}`, want: nil},
		{name: "empty array", raw: `[]`, want: nil},
		{name: "null", raw: `null`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []struct {
				ID int64 `json:"id"`
			}
			require.NoError(t, ExtractList(json.RawMessage(tt.raw), &items))
			var ids []int64
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestExtract_InvalidJSON(t *testing.T) {
	var out []int
	assert.Error(t, Extract(json.RawMessage(`{`), "@", &out))
}

func TestDecodeOrder_NestedCustomerAndAddresses(t *testing.T) {
	raw := `{
		"id": 42,
		"order_number": "ORD-42",
		"customer": {"name": "Grace Hopper", "email": "grace@example.com"},
		"status": "processing",
		"payment_status": "paid",
		"total": "120.50",
		"created_at": "2026-02-03T10:00:00Z",
		"items": [{"product_title": "Lamp", "variant_sku": "L-1", "quantity": 2, "price": "60.25", "subtotal": "120.50"}],
		"shipping_address": {"name": "Grace H.", "address_line1": "1 Navy Way", "city": "Arlington", "zip_code": "22201", "country": "US"},
		"status_choices": [["pending", "Pending"], ["processing", "Processing"]],
		"payment_status_choices": [{"value": "unpaid"}, {"value": "paid"}]
	}`

	o, err := DecodeOrder(json.RawMessage(raw))
	require.NoError(t, err)

	assert.Equal(t, int64(42), o.ID)
	assert.Equal(t, "ORD-42", o.OrderNumber)
	assert.Equal(t, "Grace Hopper", o.CustomerName)
	assert.Equal(t, "grace@example.com", o.CustomerEmail)
	assert.Equal(t, model.Decimal("120.50"), o.TotalPrice)
	assert.Equal(t, 1, o.ItemsCount, "falls back to the item count")
	require.NotNil(t, o.CreatedAt)
	assert.True(t, o.CreatedAt.Equal(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Grace H.", o.Shipping.FullName)
	assert.Equal(t, "1 Navy Way", o.Shipping.Address)
	assert.Equal(t, "22201", o.Shipping.PostalCode)
	assert.True(t, o.Billing.Empty())

	assert.Equal(t, []string{"pending", "processing"}, o.StatusOptions())
	assert.Equal(t, []string{"unpaid", "paid"}, o.PaymentOptions())
}

func TestDecodeOrder_FlatFields(t *testing.T) {
	raw := `{"id": 5, "customer_name": "", "email": "x@example.com", "items_count": 3, "total_price": 9.5}`
	o, err := DecodeOrder(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", o.CustomerName, "falls back to the email")
	assert.Equal(t, 3, o.ItemsCount)
	assert.Equal(t, model.Decimal("9.5"), o.TotalPrice)
	assert.Equal(t, "#5", o.OrderNumber)
	assert.Equal(t, model.OrderStatuses(), o.StatusOptions())
}

func TestAdmin_OrdersQueryAndStatusUpdate(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Handle("GET /admin/orders", testutil.Respond(http.StatusOK, []map[string]any{
		{"id": 1, "order_number": "A-1", "customer_name": "Ann", "status": "pending"},
	}, ""))
	b.Handle("PATCH /admin/orders/{id}/status", testutil.Respond(http.StatusOK, nil, "Order updated"))

	admin := NewAdmin(newTestClient(t, b.URL).Pipeline(mockauth.NewMemoryBrowserStorage(nil)))
	ctx := context.Background()

	orders, err := admin.Orders(ctx, "ann", "pending")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ann", orders[0].CustomerName)
	assert.Equal(t, "search=ann&status=pending", b.LastRequest().Query)

	msg, err := admin.UpdateOrderStatus(ctx, 1, model.OrderStatusUpdate{Status: "shipped", PaymentStatus: "paid", Notes: "sent"})
	require.NoError(t, err)
	assert.Equal(t, "Order updated", msg)
	last := b.LastRequest()
	assert.Equal(t, http.MethodPatch, last.Method)
	assert.Equal(t, "/admin/orders/1/status", last.Path)
	assert.JSONEq(t, `{"status":"shipped","payment_status":"paid","notes":"sent"}`, string(last.Body))
}

func TestAdmin_ResourceRoutes(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Handle("GET /admin/brands/{id}", testutil.Respond(http.StatusOK, map[string]any{"id": 2, "name": "Acme"}, ""))
	b.Handle("PATCH /admin/brands/{id}", testutil.Respond(http.StatusOK, map[string]any{"id": 2, "name": "Acme Co"}, "Brand updated"))
	b.Handle("DELETE /admin/brands/{id}", testutil.Respond(http.StatusOK, nil, "Brand deleted"))
	b.Handle("POST /admin/banners/{id}/toggle-status", testutil.Respond(http.StatusOK, nil, "Banner activated"))
	b.Handle("GET /admin/products/{id}/variants", testutil.Respond(http.StatusOK, []map[string]any{{"id": 1, "sku": "S-1"}}, ""))
	b.Handle("POST /admin/attributes/{id}/values", testutil.Respond(http.StatusCreated, map[string]any{"id": 8, "value": "XL"}, ""))

	admin := NewAdmin(newTestClient(t, b.URL).Pipeline(mockauth.NewMemoryBrowserStorage(nil)))
	ctx := context.Background()

	brand, err := admin.Brands().Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)

	brand, msg, err := admin.Brands().Update(ctx, 2, Multipart(model.BrandRequest{Name: "Acme Co"}))
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", brand.Name)
	assert.Equal(t, "Brand updated", msg)

	msg, err = admin.Brands().Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Brand deleted", msg)

	msg, err = admin.ToggleBanner(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Banner activated", msg)

	variants, err := admin.ProductVariants(ctx, 11)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "S-1", variants[0].SKU)

	val, _, err := admin.CreateAttributeValue(ctx, 3, model.AttributeValueRequest{Value: "XL", DisplayOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, "XL", val.Value)
	assert.Equal(t, "/admin/attributes/3/values", b.LastRequest().Path)
}
