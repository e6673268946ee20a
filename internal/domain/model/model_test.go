//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Decimal
	}{
		{name: "string", in: `"19.99"`, want: "19.99"},
		{name: "number", in: `12.5`, want: "12.5"},
		{name: "integer", in: `3`, want: "3"},
		{name: "null", in: `null`, want: ""},
		{name: "padded string", in: `" 4.00 "`, want: "4.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d Decimal
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDecimal_RejectsGarbage(t *testing.T) {
	var d Decimal
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &d))
}

func TestDecimal_MarshalAndMoney(t *testing.T) {
	b, err := json.Marshal(struct {
		P Decimal `json:"p"`
		Q Decimal `json:"q"`
	}{P: "7.5"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"7.5","q":null}`, string(b))

	assert.Equal(t, "7.50", Decimal("7.5").Money())
	assert.Equal(t, "-", Decimal("").Money())
	assert.InDelta(t, 0.0, Decimal("abc").Float(), 0.0001)
}

func TestProductRequest_FormFields(t *testing.T) {
	cat := int64(4)
	req := ProductRequest{
		Title:        "Desk Lamp",
		Slug:         "desk-lamp",
		CategoryID:   &cat,
		Price:        "25.00",
		Stock:        12,
		IsActive:     true,
		DeleteImages: []int64{9, 10},
		Images:       []Upload{{Filename: "a.png", Data: []byte("x")}},
	}

	fields := map[string][]string{}
	for _, f := range req.FormFields() {
		fields[f.Name] = append(fields[f.Name], f.Value)
	}

	assert.Equal(t, []string{"4"}, fields["category_id"])
	assert.Equal(t, []string{""}, fields["brand_id"])
	assert.Equal(t, []string{"5"}, fields["low_stock_threshold"], "threshold defaults when blank")
	assert.Equal(t, []string{"9", "10"}, fields["delete_images"])
	assert.NotContains(t, fields, "sale_price", "unset decimals are omitted")

	uploads := req.FormUploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "images", uploads[0].Field)
}

func TestProduct_Helpers(t *testing.T) {
	p := Product{Category: &NamedRef{ID: 2, Name: "Lighting"}, Stock: 5}
	assert.Equal(t, "Lighting", p.CategoryName())
	assert.Equal(t, "-", p.BrandName())
	assert.Equal(t, int64(2), p.SelectedCategoryID())
	assert.Equal(t, int64(0), p.SelectedBrandID())
	assert.True(t, p.LowStock())

	p.LowStockThreshold = 2
	assert.False(t, p.LowStock())
}

func TestBannerRequest_OmitsEmptyDates(t *testing.T) {
	req := BannerRequest{Title: "Summer", StartDate: "2026-06-01T00:00"}
	names := map[string]bool{}
	for _, f := range req.FormFields() {
		names[f.Name] = true
	}
	assert.True(t, names["start_date"])
	assert.False(t, names["end_date"])
	assert.Empty(t, req.FormUploads())
}

func TestOrder_Choices(t *testing.T) {
	o := Order{}
	assert.Equal(t, OrderStatuses(), o.StatusOptions())
	assert.Equal(t, PaymentStatuses(), o.PaymentOptions())

	o.StatusChoices = []string{"pending", "shipped"}
	assert.Equal(t, []string{"pending", "shipped"}, o.StatusOptions())
	assert.True(t, ValidStatus("shipped", o.StatusOptions()))
	assert.False(t, ValidStatus("lost", o.StatusOptions()))
	assert.True(t, Address{}.Empty())
}

func TestFeaturedSection_HasProduct(t *testing.T) {
	f := FeaturedSection{ProductIDs: []int64{1}, Products: []NamedRef{{ID: 3}}}
	assert.True(t, f.HasProduct(1))
	assert.True(t, f.HasProduct(3))
	assert.False(t, f.HasProduct(2))
	assert.Len(t, SectionTypes(), 4)
}

func TestVariant_SelectedValue(t *testing.T) {
	v := Variant{Attributes: []VariantAttribute{{AttributeTypeID: 1, ValueID: 11}}}
	assert.Equal(t, int64(11), v.SelectedValue(1))
	assert.Equal(t, int64(0), v.SelectedValue(2))
	assert.True(t, LowStockProduct{Stock: 3}.Critical())
	assert.False(t, LowStockProduct{Stock: 4}.Critical())
}
