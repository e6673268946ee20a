//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "strconv"

// DefaultLowStockThreshold is applied when the form leaves the threshold blank.
const DefaultLowStockThreshold = 5

// NamedRef is the {id, name} shape the backend nests for relations.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductImage is one gallery image of a product.
type ProductImage struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	IsPrimary bool   `json:"is_primary"`
}

// Product is a catalog item.
type Product struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Slug              string         `json:"slug"`
	Description       string         `json:"description"`
	CategoryID        *int64         `json:"category_id,omitempty"`
	Category          *NamedRef      `json:"category,omitempty"`
	BrandID           *int64         `json:"brand_id,omitempty"`
	Brand             *NamedRef      `json:"brand,omitempty"`
	Price             Decimal        `json:"price"`
	SalePrice         Decimal        `json:"sale_price"`
	Stock             int            `json:"stock"`
	LowStockThreshold int            `json:"low_stock_threshold"`
	Weight            Decimal        `json:"weight"`
	Length            Decimal        `json:"length"`
	Width             Decimal        `json:"width"`
	Height            Decimal        `json:"height"`
	IsActive          bool           `json:"is_active"`
	Authentic         bool           `json:"authentic"`
	MetaTitle         string         `json:"meta_title"`
	MetaDescription   string         `json:"meta_description"`
	Images            []ProductImage `json:"images,omitempty"`
	VariantCount      int            `json:"variant_count"`
}

// CategoryName returns the nested category name or "-".
func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return "-"
	}
	return p.Category.Name
}

// BrandName returns the nested brand name or "-".
func (p Product) BrandName() string {
	if p.Brand == nil || p.Brand.Name == "" {
		return "-"
	}
	return p.Brand.Name
}

// SelectedCategoryID prefers the flat id and falls back to the nested one.
func (p Product) SelectedCategoryID() int64 {
	if p.CategoryID != nil {
		return *p.CategoryID
	}
	if p.Category != nil {
		return p.Category.ID
	}
	return 0
}

// SelectedBrandID prefers the flat id and falls back to the nested one.
func (p Product) SelectedBrandID() int64 {
	if p.BrandID != nil {
		return *p.BrandID
	}
	if p.Brand != nil {
		return p.Brand.ID
	}
	return 0
}

// LowStock reports whether stock is at or below the threshold.
func (p Product) LowStock() bool {
	threshold := p.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return p.Stock <= threshold
}

// ProductRequest creates or updates a product. DeleteImages lists gallery
// image ids to drop on update.
type ProductRequest struct {
	Title             string
	Slug              string
	Description       string
	CategoryID        *int64
	BrandID           *int64
	Price             Decimal
	SalePrice         Decimal
	Stock             int
	LowStockThreshold int
	Weight            Decimal
	Length            Decimal
	Width             Decimal
	Height            Decimal
	IsActive          bool
	Authentic         bool
	MetaTitle         string
	MetaDescription   string
	Images            []Upload
	DeleteImages      []int64
}

func (r ProductRequest) FormFields() []FormField {
	threshold := r.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	fields := []FormField{
		{Name: "title", Value: r.Title},
		{Name: "slug", Value: r.Slug},
		{Name: "description", Value: r.Description},
		optionalID("category_id", r.CategoryID),
		optionalID("brand_id", r.BrandID),
		{Name: "price", Value: r.Price.String()},
		intField("stock", r.Stock),
		intField("low_stock_threshold", threshold),
		boolField("is_active", r.IsActive),
		boolField("authentic", r.Authentic),
		{Name: "meta_title", Value: r.MetaTitle},
		{Name: "meta_description", Value: r.MetaDescription},
	}
	fields = appendIfSet(fields, "sale_price", r.SalePrice)
	fields = appendIfSet(fields, "weight", r.Weight)
	fields = appendIfSet(fields, "length", r.Length)
	fields = appendIfSet(fields, "width", r.Width)
	fields = appendIfSet(fields, "height", r.Height)
	for _, id := range r.DeleteImages {
		fields = append(fields, FormField{Name: "delete_images", Value: strconv.FormatInt(id, 10)})
	}
	return fields
}

func (r ProductRequest) FormUploads() []Upload {
	out := make([]Upload, 0, len(r.Images))
	for _, img := range r.Images {
		img.Field = "images"
		out = append(out, img)
	}
	return out
}

// VariantAttribute is one attribute/value pair of a variant as returned by the backend.
type VariantAttribute struct {
	AttributeTypeID   int64  `json:"attribute_type_id,omitempty"`
	AttributeTypeName string `json:"attribute_type_name"`
	ValueID           int64  `json:"id,omitempty"`
	Value             string `json:"value"`
}

// Variant is a purchasable SKU of a product.
type Variant struct {
	ID         int64              `json:"id"`
	ProductID  int64              `json:"product_id,omitempty"`
	SKU        string             `json:"sku"`
	Price      Decimal            `json:"price"`
	SalePrice  Decimal            `json:"sale_price"`
	Stock      int                `json:"stock"`
	Weight     Decimal            `json:"weight"`
	IsActive   bool               `json:"is_active"`
	Attributes []VariantAttribute `json:"attributes"`
}

// SelectedValue returns the value id chosen for the given attribute type, or zero.
func (v Variant) SelectedValue(typeID int64) int64 {
	for _, a := range v.Attributes {
		if a.AttributeTypeID == typeID {
			return a.ValueID
		}
	}
	return 0
}

// VariantRequest creates or updates a variant. Attributes maps attribute
// type id to the chosen value id, both as strings the way the backend keys them.
type VariantRequest struct {
	SKU        string            `json:"sku"`
	Price      Decimal           `json:"price"`
	SalePrice  Decimal           `json:"sale_price,omitempty"`
	Stock      int               `json:"stock"`
	Weight     Decimal           `json:"weight,omitempty"`
	IsActive   bool              `json:"is_active"`
	Attributes map[string]string `json:"attributes"`
}
