//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// Featured section types.
const (
	SectionCustom      = "custom"
	SectionNewArrivals = "new_arrivals"
	SectionBestSellers = "best_sellers"
	SectionOnSale      = "on_sale"
)

// DefaultMaxProducts is applied when the form leaves max products blank.
const DefaultMaxProducts = 10

// SectionTypes lists the section type choices with their labels.
func SectionTypes() []Choice {
	return []Choice{
		{Value: SectionCustom, Label: "Custom (pick products)"},
		{Value: SectionNewArrivals, Label: "New Arrivals"},
		{Value: SectionBestSellers, Label: "Best Sellers"},
		{Value: SectionOnSale, Label: "On Sale"},
	}
}

// Choice is a select option.
type Choice struct {
	Value string
	Label string
}

// FeaturedSection is a curated product strip on the homepage.
type FeaturedSection struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	SectionType   string     `json:"section_type"`
	MaxProducts   int        `json:"max_products"`
	DisplayOrder  int        `json:"display_order"`
	IsActive      bool       `json:"is_active"`
	ProductIDs    []int64    `json:"product_ids,omitempty"`
	Products      []NamedRef `json:"products,omitempty"`
	ProductsCount int        `json:"products_count"`
}

// HasProduct reports whether id is part of the section.
func (f FeaturedSection) HasProduct(id int64) bool {
	for _, p := range f.ProductIDs {
		if p == id {
			return true
		}
	}
	for _, p := range f.Products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// FeaturedSectionRequest creates or updates a featured section.
type FeaturedSectionRequest struct {
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	SectionType  string  `json:"section_type"`
	MaxProducts  int     `json:"max_products"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	ProductIDs   []int64 `json:"product_ids"`
}
