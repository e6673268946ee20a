//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// Brand is a product manufacturer or label.
type Brand struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	Website       string `json:"website"`
	IsActive      bool   `json:"is_active"`
	Logo          string `json:"logo,omitempty"`
	ProductsCount int    `json:"products_count"`
}

// BrandRequest creates or updates a brand.
type BrandRequest struct {
	Name        string
	Slug        string
	Description string
	Website     string
	IsActive    bool
	Logo        *Upload
}

func (r BrandRequest) FormFields() []FormField {
	return []FormField{
		{Name: "name", Value: r.Name},
		{Name: "slug", Value: r.Slug},
		{Name: "description", Value: r.Description},
		{Name: "website", Value: r.Website},
		boolField("is_active", r.IsActive),
	}
}

func (r BrandRequest) FormUploads() []Upload {
	if r.Logo == nil {
		return nil
	}
	return []Upload{*r.Logo}
}
