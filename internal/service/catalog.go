package service

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/target/storefront-admin/internal/domain/model"
	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/ports"
	"github.com/target/storefront-admin/internal/util/slug"
)

// CatalogOptions groups dependencies for Catalog.
type CatalogOptions struct {
	Admin  ports.AdminAPI
	Logger *slog.Logger
}

// Catalog is what the feature screens call. It fills in defaults the backend
// expects, checks what can be checked locally and loads form options.
type Catalog struct {
	admin  ports.AdminAPI
	logger *slog.Logger
}

// NewCatalog constructs a new Catalog.
func NewCatalog(opts CatalogOptions) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{admin: opts.Admin, logger: logger.With("component", "catalog")}
}

// Admin exposes the raw admin API for plain reads and deletes.
func (c *Catalog) Admin() ports.AdminAPI { return c.admin }

// SearchQuery builds the list query for a search box value.
func SearchQuery(search string) url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	return q
}

// List fetches one collection filtered by search.
func List[T any](ctx context.Context, coll ports.Collection[T], search string) ([]T, error) {
	return coll.List(ctx, SearchQuery(search))
}

func save[T any](ctx context.Context, coll ports.Collection[T], id int64, req any) (T, string, error) {
	if id == 0 {
		return coll.Create(ctx, req)
	}
	return coll.Update(ctx, id, req)
}

// Dashboard fetches the landing page summary.
func (c *Catalog) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	return c.admin.Dashboard(ctx)
}

// SaveUser creates (id == 0) or updates a user. A password is required on
// create; on update a non-blank password is sent as new_password.
func (c *Catalog) SaveUser(ctx context.Context, id int64, req model.UserRequest) (model.User, string, error) {
	if id == 0 {
		if req.Password == "" {
			return model.User{}, "", apperrors.ValidationField("password", "Password is required")
		}
		req.NewPassword = ""
	} else {
		if req.NewPassword == "" {
			req.NewPassword = req.Password
		}
		req.Password = ""
	}
	return save(ctx, c.admin.Users(), id, req)
}

// SaveCategory creates or updates a category, deriving the slug from the
// name when blank. A category cannot be its own parent.
func (c *Catalog) SaveCategory(ctx context.Context, id int64, req model.CategoryRequest) (model.Category, string, error) {
	if id != 0 && req.ParentID != nil && *req.ParentID == id {
		return model.Category{}, "", apperrors.ValidationField("parent_id", "A category cannot be its own parent")
	}
	req.Slug = slug.OrFrom(req.Slug, req.Name)
	return save(ctx, c.admin.Categories(), id, req)
}

// CategoryParents lists the categories a category may nest under.
func (c *Catalog) CategoryParents(ctx context.Context, excludeID int64) ([]model.Category, error) {
	all, err := c.admin.Categories().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(cat model.Category) bool { return cat.ID == excludeID }), nil
}

// SaveBrand creates or updates a brand, deriving the slug from the name when blank.
func (c *Catalog) SaveBrand(ctx context.Context, id int64, req model.BrandRequest) (model.Brand, string, error) {
	req.Slug = slug.OrFrom(req.Slug, req.Name)
	return save(ctx, c.admin.Brands(), id, req)
}

// SaveProduct creates or updates a product, deriving the slug from the
// title when blank.
func (c *Catalog) SaveProduct(ctx context.Context, id int64, req model.ProductRequest) (model.Product, string, error) {
	req.Slug = slug.OrFrom(req.Slug, req.Title)
	if req.LowStockThreshold <= 0 {
		req.LowStockThreshold = model.DefaultLowStockThreshold
	}
	if !req.SalePrice.IsZero() && !req.Price.IsZero() && req.SalePrice.Float() >= req.Price.Float() {
		return model.Product{}, "", apperrors.ValidationField("sale_price", "Sale price must be lower than the price")
	}
	return save(ctx, c.admin.Products(), id, req)
}

// ProductOptions are the select options of the product form.
type ProductOptions struct {
	Categories []model.Category
	Brands     []model.Brand
}

// ProductFormOptions loads categories and brands concurrently.
func (c *Catalog) ProductFormOptions(ctx context.Context) (ProductOptions, error) {
	var opts ProductOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := c.admin.Categories().List(gctx, nil)
		opts.Categories = cats
		return err
	})
	g.Go(func() error {
		brands, err := c.admin.Brands().List(gctx, nil)
		opts.Brands = brands
		return err
	})
	if err := g.Wait(); err != nil {
		return ProductOptions{}, err
	}
	return opts, nil
}

// ProductChoices lists the products offered by banner and featured section pickers.
func (c *Catalog) ProductChoices(ctx context.Context) ([]model.Product, error) {
	return c.admin.Products().List(ctx, nil)
}

// SaveVariant creates a variant of productID (id == 0) or updates one.
func (c *Catalog) SaveVariant(ctx context.Context, productID, id int64, req model.VariantRequest) (model.Variant, string, error) {
	if strings.TrimSpace(req.SKU) == "" {
		return model.Variant{}, "", apperrors.ValidationField("sku", "SKU is required")
	}
	for typeID, valueID := range req.Attributes {
		if valueID == "" {
			delete(req.Attributes, typeID)
		}
	}
	if id == 0 {
		return c.admin.CreateVariant(ctx, productID, req)
	}
	return c.admin.Variants().Update(ctx, id, req)
}

// VariantFormOptions loads every attribute with its values. Values are
// fetched concurrently and returned in attribute order.
func (c *Catalog) VariantFormOptions(ctx context.Context) ([]model.AttributeOptions, error) {
	attrs, err := c.admin.Attributes().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.AttributeOptions, len(attrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, attr := range attrs {
		out[i].Attribute = attr
		g.Go(func() error {
			values, err := c.admin.ValuesOf(gctx, attr.ID)
			if err != nil {
				return err
			}
			out[i].Values = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAttribute creates or updates an attribute, deriving the slug from the
// name when blank.
func (c *Catalog) SaveAttribute(ctx context.Context, id int64, req model.AttributeRequest) (model.Attribute, string, error) {
	req.Slug = slug.OrFrom(req.Slug, req.Name)
	return save(ctx, c.admin.Attributes(), id, req)
}

// SaveAttributeValue creates a value of attributeID (id == 0) or updates one.
func (c *Catalog) SaveAttributeValue(ctx context.Context, attributeID, id int64, req model.AttributeValueRequest) (model.AttributeValue, string, error) {
	req.Value = strings.TrimSpace(req.Value)
	if req.Value == "" {
		return model.AttributeValue{}, "", apperrors.ValidationField("value", "Value is required")
	}
	if id == 0 {
		return c.admin.CreateAttributeValue(ctx, attributeID, req)
	}
	return c.admin.AttributeValues().Update(ctx, id, req)
}

// UpdateOrderStatus checks the requested statuses against the order's
// choices before sending them.
func (c *Catalog) UpdateOrderStatus(ctx context.Context, order model.Order, upd model.OrderStatusUpdate) (string, error) {
	if !model.ValidStatus(upd.Status, order.StatusOptions()) {
		return "", apperrors.ValidationField("status", "Select a valid order status")
	}
	if !model.ValidStatus(upd.PaymentStatus, order.PaymentOptions()) {
		return "", apperrors.ValidationField("payment_status", "Select a valid payment status")
	}
	msg, err := c.admin.UpdateOrderStatus(ctx, order.ID, upd)
	if err != nil {
		return "", err
	}
	c.logger.InfoContext(ctx, "order status updated", "order_id", order.ID, "status", upd.Status, "payment_status", upd.PaymentStatus)
	return msg, nil
}

// SaveBanner creates or updates a banner. The end date may not precede the start date.
func (c *Catalog) SaveBanner(ctx context.Context, id int64, req model.BannerRequest) (model.Banner, string, error) {
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		return model.Banner{}, "", apperrors.ValidationField("end_date", "End date must be after the start date")
	}
	return save(ctx, c.admin.Banners(), id, req)
}

// SaveFeaturedSection creates or updates a featured section. Max products
// defaults when blank; only custom sections carry hand-picked products.
func (c *Catalog) SaveFeaturedSection(ctx context.Context, id int64, req model.FeaturedSectionRequest) (model.FeaturedSection, string, error) {
	if !validSectionType(req.SectionType) {
		return model.FeaturedSection{}, "", apperrors.ValidationField("section_type", "Select a valid section type")
	}
	if req.MaxProducts <= 0 {
		req.MaxProducts = model.DefaultMaxProducts
	}
	if req.ProductIDs == nil || req.SectionType != model.SectionCustom {
		req.ProductIDs = []int64{}
	}
	if len(req.ProductIDs) > req.MaxProducts {
		return model.FeaturedSection{}, "", apperrors.ValidationField("product_ids",
			"Select at most "+strconv.Itoa(req.MaxProducts)+" products")
	}
	return save(ctx, c.admin.FeaturedSections(), id, req)
}

func validSectionType(t string) bool {
	for _, c := range model.SectionTypes() {
		if c.Value == t {
			return true
		}
	}
	return false
}

// ToggleBanner flips a banner's active flag.
func (c *Catalog) ToggleBanner(ctx context.Context, id int64) (string, error) {
	return c.admin.ToggleBanner(ctx, id)
}

// ToggleFeaturedSection flips a featured section's active flag.
func (c *Catalog) ToggleFeaturedSection(ctx context.Context, id int64) (string, error) {
	return c.admin.ToggleFeaturedSection(ctx, id)
}
