package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/ports"
)

// Admin groups the admin endpoints of the backend for one browser.
type Admin struct {
	pipe *Pipeline

	users            Resource[model.User]
	categories       Resource[model.Category]
	brands           Resource[model.Brand]
	products         Resource[model.Product]
	variants         Resource[model.Variant]
	attributes       Resource[model.Attribute]
	attributeValues  Resource[model.AttributeValue]
	banners          Resource[model.Banner]
	featuredSections Resource[model.FeaturedSection]
}

var _ ports.AdminAPI = (*Admin)(nil)

// NewAdmin binds every admin collection to p.
func NewAdmin(p *Pipeline) *Admin {
	return &Admin{
		pipe:             p,
		users:            NewResource[model.User](p, "/admin/users"),
		categories:       NewResource[model.Category](p, "/admin/categories"),
		brands:           NewResource[model.Brand](p, "/admin/brands"),
		products:         NewResource[model.Product](p, "/admin/products"),
		variants:         NewResource[model.Variant](p, "/admin/variants"),
		attributes:       NewResource[model.Attribute](p, "/admin/attributes"),
		attributeValues:  NewResource[model.AttributeValue](p, "/admin/attribute-values"),
		banners:          NewResource[model.Banner](p, "/admin/banners"),
		featuredSections: NewResource[model.FeaturedSection](p, "/admin/featured-sections"),
	}
}

func (a *Admin) Users() ports.Collection[model.User]           { return a.users }
func (a *Admin) Categories() ports.Collection[model.Category]  { return a.categories }
func (a *Admin) Brands() ports.Collection[model.Brand]         { return a.brands }
func (a *Admin) Products() ports.Collection[model.Product]     { return a.products }
func (a *Admin) Variants() ports.Collection[model.Variant]     { return a.variants }
func (a *Admin) Attributes() ports.Collection[model.Attribute] { return a.attributes }
func (a *Admin) AttributeValues() ports.Collection[model.AttributeValue] {
	return a.attributeValues
}
func (a *Admin) Banners() ports.Collection[model.Banner] { return a.banners }
func (a *Admin) FeaturedSections() ports.Collection[model.FeaturedSection] {
	return a.featuredSections
}

func idPath(v int64) string { return strconv.FormatInt(v, 10) }

// Dashboard fetches the landing page summary.
func (a *Admin) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	_, err := a.pipe.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/dashboard"}, &stats)
	return stats, err
}

// ProductVariants lists the variants of a product.
func (a *Admin) ProductVariants(ctx context.Context, productID int64) ([]model.Variant, error) {
	return NewResource[model.Variant](a.pipe, "/admin/products/"+idPath(productID)+"/variants").List(ctx, nil)
}

// CreateVariant adds a variant to a product.
func (a *Admin) CreateVariant(ctx context.Context, productID int64, req model.VariantRequest) (model.Variant, string, error) {
	return NewResource[model.Variant](a.pipe, "/admin/products/"+idPath(productID)+"/variants").Create(ctx, req)
}

// ValuesOf lists the values of an attribute.
func (a *Admin) ValuesOf(ctx context.Context, attributeID int64) ([]model.AttributeValue, error) {
	return NewResource[model.AttributeValue](a.pipe, "/admin/attributes/"+idPath(attributeID)+"/values").List(ctx, nil)
}

// CreateAttributeValue adds a value to an attribute.
func (a *Admin) CreateAttributeValue(ctx context.Context, attributeID int64, req model.AttributeValueRequest) (model.AttributeValue, string, error) {
	return NewResource[model.AttributeValue](a.pipe, "/admin/attributes/"+idPath(attributeID)+"/values").Create(ctx, req)
}

// Orders lists orders filtered by search text and status.
func (a *Admin) Orders(ctx context.Context, search, status string) ([]model.Order, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", status)
	}
	var raw json.RawMessage
	if _, err := a.pipe.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/orders", Query: q}, &raw); err != nil {
		return nil, err
	}
	return DecodeOrders(raw)
}

// Order fetches one order.
func (a *Admin) Order(ctx context.Context, orderID int64) (model.Order, error) {
	var raw json.RawMessage
	if _, err := a.pipe.Do(ctx, Request{Method: http.MethodGet, Path: "/admin/orders/" + idPath(orderID)}, &raw); err != nil {
		return model.Order{}, err
	}
	return DecodeOrder(raw)
}

// UpdateOrderStatus changes the order and payment status.
func (a *Admin) UpdateOrderStatus(ctx context.Context, orderID int64, upd model.OrderStatusUpdate) (string, error) {
	env, err := a.pipe.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   "/admin/orders/" + idPath(orderID) + "/status",
		Body:   JSON(upd),
	}, nil)
	return message(env), err
}

// ToggleBanner flips a banner's active flag.
func (a *Admin) ToggleBanner(ctx context.Context, bannerID int64) (string, error) {
	return a.toggle(ctx, "/admin/banners/"+idPath(bannerID)+"/toggle-status")
}

// ToggleFeaturedSection flips a featured section's active flag.
func (a *Admin) ToggleFeaturedSection(ctx context.Context, sectionID int64) (string, error) {
	return a.toggle(ctx, "/admin/featured-sections/"+idPath(sectionID)+"/toggle-status")
}

func (a *Admin) toggle(ctx context.Context, path string) (string, error) {
	env, err := a.pipe.Do(ctx, Request{Method: http.MethodPost, Path: path}, nil)
	return message(env), err
}
