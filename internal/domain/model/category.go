//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// Category groups products and may nest under a parent.
type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	ParentID      *int64 `json:"parent_id,omitempty"`
	ParentName    string `json:"parent_name,omitempty"`
	IsActive      bool   `json:"is_active"`
	DisplayOrder  int    `json:"display_order"`
	Image         string `json:"image,omitempty"`
	ProductsCount int    `json:"products_count"`
}

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name         string
	Slug         string
	Description  string
	ParentID     *int64
	IsActive     bool
	DisplayOrder int
	Image        *Upload
}

func (r CategoryRequest) FormFields() []FormField {
	return []FormField{
		{Name: "name", Value: r.Name},
		{Name: "slug", Value: r.Slug},
		{Name: "description", Value: r.Description},
		optionalID("parent_id", r.ParentID),
		boolField("is_active", r.IsActive),
		intField("display_order", r.DisplayOrder),
	}
}

func (r CategoryRequest) FormUploads() []Upload {
	if r.Image == nil {
		return nil
	}
	return []Upload{*r.Image}
}
