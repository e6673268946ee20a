package ports

import (
	"context"
	"net/url"

	"github.com/target/storefront-admin/internal/domain/model"
)

// Collection is CRUD access to one admin collection. Write requests that
// implement model.MultipartRequest are sent as multipart/form-data, all
// others as JSON. The string results are the backend's success messages.
type Collection[T any] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, req any) (T, string, error)
	Update(ctx context.Context, id int64, req any) (T, string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// AdminAPI is the backend's admin surface as seen by one browser.
type AdminAPI interface {
	Users() Collection[model.User]
	Categories() Collection[model.Category]
	Brands() Collection[model.Brand]
	Products() Collection[model.Product]
	Variants() Collection[model.Variant]
	Attributes() Collection[model.Attribute]
	AttributeValues() Collection[model.AttributeValue]
	Banners() Collection[model.Banner]
	FeaturedSections() Collection[model.FeaturedSection]

	Dashboard(ctx context.Context) (model.DashboardStats, error)
	ProductVariants(ctx context.Context, productID int64) ([]model.Variant, error)
	CreateVariant(ctx context.Context, productID int64, req model.VariantRequest) (model.Variant, string, error)
	ValuesOf(ctx context.Context, attributeID int64) ([]model.AttributeValue, error)
	CreateAttributeValue(ctx context.Context, attributeID int64, req model.AttributeValueRequest) (model.AttributeValue, string, error)
	Orders(ctx context.Context, search, status string) ([]model.Order, error)
	Order(ctx context.Context, id int64) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, upd model.OrderStatusUpdate) (string, error)
	ToggleBanner(ctx context.Context, id int64) (string, error)
	ToggleFeaturedSection(ctx context.Context, id int64) (string, error)
}

// BrowserBackend is the backend bound to one browser's storage and location.
type BrowserBackend interface {
	Authenticator
	Admin() AdminAPI
	Observe(o LogoutObserver)
}

// Gateway opens browser-bound backends.
type Gateway interface {
	Open(storage BrowserStorage, location string) BrowserBackend
}
