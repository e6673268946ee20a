package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	productsPath             = "/products"
	errMsgUnableLoadProducts = "Unable to load products"
)

// productForm is the product form. ExistingImages are listed with a delete
// checkbox each; new files arrive in Images.
type productForm struct {
	ID             int64
	ExistingImages []model.ProductImage
	model.ProductRequest
}

func productFormFrom(p model.Product) productForm {
	return productForm{
		ID:             p.ID,
		ExistingImages: p.Images,
		ProductRequest: model.ProductRequest{
			Title:             p.Title,
			Slug:              p.Slug,
			Description:       p.Description,
			CategoryID:        idPtr(p.SelectedCategoryID()),
			BrandID:           idPtr(p.SelectedBrandID()),
			Price:             p.Price,
			SalePrice:         p.SalePrice,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			Weight:            p.Weight,
			Length:            p.Length,
			Width:             p.Width,
			Height:            p.Height,
			IsActive:          p.IsActive,
			Authentic:         p.Authentic,
			MetaTitle:         p.MetaTitle,
			MetaDescription:   p.MetaDescription,
		},
	}
}

func idPtr(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// Marked reports whether an existing image was ticked for deletion.
func (f productForm) Marked(imageID int64) bool {
	for _, id := range f.DeleteImages {
		if id == imageID {
			return true
		}
	}
	return false
}

func productFormMeta() func(FormMode) PageMeta { return formMeta("Product", PageProductForm) }

// Products lists products, filtered by ?search=.
func (h *UIHandlers) Products(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Product, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.Product, error) {
			return service.List(ctx, h.catalog(r).Admin().Products(), f.Search)
		},
		BasePath:     productsPath,
		PageMeta:     PageMeta{Title: "Products", PageTitle: "Products", CurrentPage: PageProducts},
		ItemsKey:     "Products",
		ErrorMessage: errMsgUnableLoadProducts,
	})
}

// ProductNew renders the empty product form.
func (h *UIHandlers) ProductNew(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": productForm{ProductRequest: model.ProductRequest{
			IsActive:          true,
			LowStockThreshold: model.DefaultLowStockThreshold,
		}},
	})
}

// ProductEdit renders the form for an existing product.
func (h *UIHandlers) ProductEdit(w http.ResponseWriter, r *http.Request) {
	p, _, ok := loadRecord(h, w, r, "id", productsPath, h.catalog(r).Admin().Products().Get)
	if !ok {
		return
	}
	h.renderProductForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": productFormFrom(p),
	})
}

// renderProductForm adds category and brand choices. When a rejected
// update is re-rendered, the stored images are fetched again so the
// delete checkboxes stay visible.
func (h *UIHandlers) renderProductForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderForm(w, r, data, productFormMeta(), func(ctx context.Context, data map[string]any) error {
		data["Categories"] = []model.Category{}
		data["Brands"] = []model.Brand{}

		if f, ok := data["Form"].(productForm); ok && f.ID != 0 && f.ExistingImages == nil {
			if p, err := h.catalog(r).Admin().Products().Get(ctx, f.ID); err == nil {
				f.ExistingImages = p.Images
				data["Form"] = f
			}
		}

		opts, err := h.catalog(r).ProductFormOptions(ctx)
		if err != nil {
			return err
		}
		data["Categories"] = opts.Categories
		data["Brands"] = opts.Brands
		return nil
	})
}

// ProductCreate handles POST /products.
func (h *UIHandlers) ProductCreate(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, FormModeCreate, 0)
}

// ProductUpdate handles POST /products/{id}.
func (h *UIHandlers) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveProduct(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveProduct(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[productForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseProductForm(id),
		Save: func(ctx context.Context, f productForm) (string, error) {
			_, msg, err := h.catalog(r).SaveProduct(ctx, f.ID, f.ProductRequest)
			return msg, err
		},
		Renderer:   h.renderProductForm,
		Entity:     "Product",
		SuccessURL: productsPath,
		PageMeta:   productFormMeta()(mode),
	})
}

func parseProductForm(id int64) FormParser[productForm] {
	return func(r *http.Request) (productForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return productForm{ID: id}, readFailure()
		}
		stock := formString(r, "stock")
		threshold := formString(r, "low_stock_threshold")
		f := productForm{
			ID: id,
			ProductRequest: model.ProductRequest{
				Title:             formString(r, "title"),
				Slug:              formString(r, "slug"),
				Description:       formString(r, "description"),
				CategoryID:        formIDPtr(r, "category_id"),
				BrandID:           formIDPtr(r, "brand_id"),
				Price:             model.Decimal(formString(r, "price")),
				SalePrice:         model.Decimal(formString(r, "sale_price")),
				Stock:             formInt(r, "stock", 0),
				LowStockThreshold: formInt(r, "low_stock_threshold", model.DefaultLowStockThreshold),
				Weight:            model.Decimal(formString(r, "weight")),
				Length:            model.Decimal(formString(r, "length")),
				Width:             model.Decimal(formString(r, "width")),
				Height:            model.Decimal(formString(r, "height")),
				IsActive:          formBool(r, "is_active"),
				Authentic:         formBool(r, "authentic"),
				MetaTitle:         formString(r, "meta_title"),
				MetaDescription:   formString(r, "meta_description"),
				DeleteImages:      formIDs(r, "delete_images"),
			},
		}

		v := validation.New().
			Validate("title", f.Title, validation.Required("Title", 200)).
			Validate("slug", f.Slug, validation.Optional("Slug", 200), validation.Slug("Slug")).
			Validate("price", f.Price.String(), validation.RequiredDecimal("Price")).
			Validate("sale_price", f.SalePrice.String(), validation.Decimal("Sale price")).
			Validate("stock", stock, validation.NonNegativeInt("Stock")).
			Validate("low_stock_threshold", threshold, validation.NonNegativeInt("Low stock threshold")).
			Validate("weight", f.Weight.String(), validation.Decimal("Weight")).
			Validate("length", f.Length.String(), validation.Decimal("Length")).
			Validate("width", f.Width.String(), validation.Decimal("Width")).
			Validate("height", f.Height.String(), validation.Decimal("Height")).
			Validate("meta_title", f.MetaTitle, validation.Optional("Meta title", 200)).
			Validate("meta_description", f.MetaDescription, validation.Optional("Meta description", 500))
		if !f.SalePrice.IsZero() && !f.Price.IsZero() {
			v.Check(f.SalePrice.Float() < f.Price.Float(), "sale_price", "Sale price must be lower than the price.")
		}
		images, msg := formUploads(r, "images")
		v.Check(msg == "", "images", msg)
		f.Images = images
		return f, v.Errors()
	}
}

// ProductDelete handles POST /products/{id}/delete.
func (h *UIHandlers) ProductDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Product",
		Delete:       h.catalog(r).Admin().Products().Delete,
		RedirectPath: productsPath,
	})
}
