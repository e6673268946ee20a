package viewmodel

// User represents the signed-in admin exposed to templates.
type User struct {
	Name    string
	Email   string
	Initial string
}

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Message string
	Type    string
}

// NavItem is one sidebar entry.
type NavItem struct {
	Page  string
	Label string
	Href  string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Flash           *Flash
	Nav             []NavItem
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

//nolint:gochecknoglobals // static sidebar definition
var sidebar = []NavItem{
	{Page: "dashboard", Label: "Dashboard", Href: "/"},
	{Page: "users", Label: "Users", Href: "/users"},
	{Page: "categories", Label: "Categories", Href: "/categories"},
	{Page: "brands", Label: "Brands", Href: "/brands"},
	{Page: "products", Label: "Products", Href: "/products"},
	{Page: "attributes", Label: "Attributes", Href: "/attributes"},
	{Page: "orders", Label: "Orders", Href: "/orders"},
	{Page: "banners", Label: "Banners", Href: "/banners"},
	{Page: "featured-sections", Label: "Featured Sections", Href: "/featured-sections"},
}

// Sidebar returns a copy of the sidebar entries.
func Sidebar() []NavItem {
	out := make([]NavItem, len(sidebar))
	copy(out, sidebar)
	return out
}
