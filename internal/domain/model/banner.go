//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// Banner is a homepage hero slide.
type Banner struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	ButtonText    string    `json:"button_text"`
	LinkProductID *int64    `json:"link_product_id,omitempty"`
	LinkProduct   *NamedRef `json:"link_product,omitempty"`
	DisplayOrder  int       `json:"display_order"`
	IsActive      bool      `json:"is_active"`
	Authentic     bool      `json:"authentic"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	Image         string    `json:"image,omitempty"`
	MobileImage   string    `json:"mobile_image,omitempty"`
}

// SelectedProductID prefers the flat id and falls back to the nested one.
func (b Banner) SelectedProductID() int64 {
	if b.LinkProductID != nil {
		return *b.LinkProductID
	}
	if b.LinkProduct != nil {
		return b.LinkProduct.ID
	}
	return 0
}

// BannerRequest creates or updates a banner.
type BannerRequest struct {
	Title         string
	Subtitle      string
	ButtonText    string
	LinkProductID *int64
	DisplayOrder  int
	IsActive      bool
	Authentic     bool
	StartDate     string
	EndDate       string
	Image         *Upload
	MobileImage   *Upload
}

func (r BannerRequest) FormFields() []FormField {
	fields := []FormField{
		{Name: "title", Value: r.Title},
		{Name: "subtitle", Value: r.Subtitle},
		{Name: "button_text", Value: r.ButtonText},
		optionalID("link_product_id", r.LinkProductID),
		intField("display_order", r.DisplayOrder),
		boolField("is_active", r.IsActive),
		boolField("authentic", r.Authentic),
	}
	if r.StartDate != "" {
		fields = append(fields, FormField{Name: "start_date", Value: r.StartDate})
	}
	if r.EndDate != "" {
		fields = append(fields, FormField{Name: "end_date", Value: r.EndDate})
	}
	return fields
}

func (r BannerRequest) FormUploads() []Upload {
	var out []Upload
	if r.Image != nil {
		out = append(out, *r.Image)
	}
	if r.MobileImage != nil {
		out = append(out, *r.MobileImage)
	}
	return out
}
