package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard = "dashboard"

	PageUsers    = "users"
	PageUserForm = "user-form"

	PageCategories   = "categories"
	PageCategoryForm = "category-form"

	PageBrands    = "brands"
	PageBrandForm = "brand-form"

	PageProducts    = "products"
	PageProductForm = "product-form"

	// Variants live under a product.
	PageVariants    = "variants"
	PageVariantForm = "variant-form"

	PageAttributes    = "attributes"
	PageAttributeForm = "attribute-form"

	PageAttributeValues    = "attribute-values"
	PageAttributeValueForm = "attribute-value-form"

	PageOrders = "orders"
	PageOrder  = "order"

	PageBanners    = "banners"
	PageBannerForm = "banner-form"

	PageFeaturedSections    = "featured-sections"
	PageFeaturedSectionForm = "featured-section-form"
)

// Console paths and cookies shared by middleware and handlers.
const (
	LoginPath  = "/login"
	LogoutPath = "/logout"

	BrowserCookieName = "admin_browser"
	FlashCookieName   = "admin_flash"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
	StaticPathFromTest   = "../../frontend/static"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard:           "dashboard-content",
	PageUsers:               "users-content",
	PageUserForm:            "user-form-content",
	PageCategories:          "categories-content",
	PageCategoryForm:        "category-form-content",
	PageBrands:              "brands-content",
	PageBrandForm:           "brand-form-content",
	PageProducts:            "products-content",
	PageProductForm:         "product-form-content",
	PageVariants:            "variants-content",
	PageVariantForm:         "variant-form-content",
	PageAttributes:          "attributes-content",
	PageAttributeForm:       "attribute-form-content",
	PageAttributeValues:     "attribute-values-content",
	PageAttributeValueForm:  "attribute-value-form-content",
	PageOrders:              "orders-content",
	PageOrder:               "order-content",
	PageBanners:             "banners-content",
	PageBannerForm:          "banner-form-content",
	PageFeaturedSections:    "featured-sections-content",
	PageFeaturedSectionForm: "featured-section-form-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}

//nolint:gochecknoglobals // static read-only lookup for navigation
var navSections = map[string]string{
	PageUserForm:            PageUsers,
	PageCategoryForm:        PageCategories,
	PageBrandForm:           PageBrands,
	PageProductForm:         PageProducts,
	PageVariants:            PageProducts,
	PageVariantForm:         PageProducts,
	PageAttributeForm:       PageAttributes,
	PageAttributeValues:     PageAttributes,
	PageAttributeValueForm:  PageAttributes,
	PageOrder:               PageOrders,
	PageBannerForm:          PageBanners,
	PageFeaturedSectionForm: PageFeaturedSections,
}

// NavSection returns the sidebar entry a page belongs to.
func NavSection(currentPage string) string {
	if section, ok := navSections[currentPage]; ok {
		return section
	}
	return currentPage
}
