package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
)

const (
	errMsgUnableLoadVariants = "Unable to load variants"

	// attrFieldPrefix prefixes the variant form's per-attribute selects
	// ("attr_3" holds the chosen value id of attribute type 3).
	attrFieldPrefix = "attr_"
)

// variantsPath is the variant list of a product. Without a product the
// product list is the closest page.
func variantsPath(productID int64) string {
	if productID <= 0 {
		return productsPath
	}
	return productsPath + "/" + strconv.FormatInt(productID, 10) + "/variants"
}

// variantForm is the variant form. Attributes maps attribute type id to the
// chosen value id, both as strings.
type variantForm struct {
	ID        int64
	ProductID int64
	model.VariantRequest
}

// Selected returns the chosen value id for an attribute type, or "".
func (f variantForm) Selected(typeID int64) string {
	return f.Attributes[strconv.FormatInt(typeID, 10)]
}

func variantFormFrom(v model.Variant, productID int64) variantForm {
	if v.ProductID != 0 {
		productID = v.ProductID
	}
	attrs := make(map[string]string, len(v.Attributes))
	for _, a := range v.Attributes {
		if a.AttributeTypeID != 0 && a.ValueID != 0 {
			attrs[strconv.FormatInt(a.AttributeTypeID, 10)] = strconv.FormatInt(a.ValueID, 10)
		}
	}
	return variantForm{
		ID:        v.ID,
		ProductID: productID,
		VariantRequest: model.VariantRequest{
			SKU:        v.SKU,
			Price:      v.Price,
			SalePrice:  v.SalePrice,
			Stock:      v.Stock,
			Weight:     v.Weight,
			IsActive:   v.IsActive,
			Attributes: attrs,
		},
	}
}

func variantFormMeta() func(FormMode) PageMeta { return formMeta("Variant", PageVariantForm) }

// Variants lists the variants of one product.
// GET /products/{id}/variants.
func (h *UIHandlers) Variants(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:         PageMeta{Title: "Variants", PageTitle: "Variants", CurrentPage: PageVariants},
		ErrorMessage: errMsgUnableLoadVariants,
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["ProductID"] = productID
			data["Variants"] = []model.Variant{}

			admin := h.catalog(r).Admin()
			var (
				product  model.Product
				variants []model.Variant
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				product, err = admin.Products().Get(gctx, productID)
				return err
			})
			g.Go(func() error {
				var err error
				variants, err = admin.ProductVariants(gctx, productID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Product"] = product
			data["Variants"] = variants
			data["PageTitle"] = "Variants of " + product.Title
			return nil
		},
	})
}

// VariantNew renders the empty variant form for a product.
// GET /products/{id}/variants/add.
func (h *UIHandlers) VariantNew(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.renderVariantForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": variantForm{
			ProductID:      productID,
			VariantRequest: model.VariantRequest{IsActive: true, Attributes: map[string]string{}},
		},
	})
}

// VariantEdit renders the form for an existing variant.
// GET /variants/{id}/edit?product_id=<product>.
func (h *UIHandlers) VariantEdit(w http.ResponseWriter, r *http.Request) {
	fallback := queryID(r, "product_id")
	v, _, ok := loadRecord(h, w, r, "id", variantsPath(fallback), h.catalog(r).Admin().Variants().Get)
	if !ok {
		return
	}
	h.renderVariantForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": variantFormFrom(v, fallback),
	})
}

// renderVariantForm adds one select per attribute type with its values.
func (h *UIHandlers) renderVariantForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderForm(w, r, data, variantFormMeta(), func(ctx context.Context, data map[string]any) error {
		if f, ok := data["Form"].(variantForm); ok {
			data["BackURL"] = variantsPath(f.ProductID)
		}
		data["AttributeOptions"] = []model.AttributeOptions{}
		opts, err := h.catalog(r).VariantFormOptions(ctx)
		if err != nil {
			return err
		}
		data["AttributeOptions"] = opts
		return nil
	})
}

// VariantCreate handles POST /products/{id}/variants.
func (h *UIHandlers) VariantCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveVariant(w, r, FormModeCreate, productID, 0)
}

// VariantUpdate handles POST /variants/{id}. The product id travels in a
// hidden field so the browser can return to the right list.
func (h *UIHandlers) VariantUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveVariant(w, r, FormModeEdit, 0, id)
}

func (h *UIHandlers) saveVariant(w http.ResponseWriter, r *http.Request, mode FormMode, productID, id int64) {
	parse := parseVariantForm(productID, id)
	// The redirect target depends on the submitted product id.
	form, fieldErrors := parse(r)
	HandleForm(FormHandlerOpts[variantForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser: func(*http.Request) (variantForm, map[string]string) {
			return form, fieldErrors
		},
		Save: func(ctx context.Context, f variantForm) (string, error) {
			_, msg, err := h.catalog(r).SaveVariant(ctx, f.ProductID, f.ID, f.VariantRequest)
			return msg, err
		},
		Renderer:   h.renderVariantForm,
		Entity:     "Variant",
		SuccessURL: variantsPath(form.ProductID),
		PageMeta:   variantFormMeta()(mode),
	})
}

func parseVariantForm(productID, id int64) FormParser[variantForm] {
	return func(r *http.Request) (variantForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return variantForm{ID: id, ProductID: productID}, readFailure()
		}
		if productID == 0 {
			if p := formIDPtr(r, "product_id"); p != nil {
				productID = *p
			}
		}
		stock := formString(r, "stock")
		f := variantForm{
			ID:        id,
			ProductID: productID,
			VariantRequest: model.VariantRequest{
				SKU:        formString(r, "sku"),
				Price:      model.Decimal(formString(r, "price")),
				SalePrice:  model.Decimal(formString(r, "sale_price")),
				Stock:      formInt(r, "stock", 0),
				Weight:     model.Decimal(formString(r, "weight")),
				IsActive:   formBool(r, "is_active"),
				Attributes: map[string]string{},
			},
		}
		for key := range r.PostForm {
			typeID, found := strings.CutPrefix(key, attrFieldPrefix)
			if !found {
				continue
			}
			if _, err := strconv.ParseInt(typeID, 10, 64); err != nil {
				continue
			}
			f.Attributes[typeID] = formString(r, key)
		}

		v := validation.New().
			Validate("sku", f.SKU, validation.Required("SKU", 100)).
			Validate("price", f.Price.String(), validation.RequiredDecimal("Price")).
			Validate("sale_price", f.SalePrice.String(), validation.Decimal("Sale price")).
			Validate("stock", stock, validation.Required("Stock", 12), validation.NonNegativeInt("Stock")).
			Validate("weight", f.Weight.String(), validation.Decimal("Weight"))
		if !f.SalePrice.IsZero() && !f.Price.IsZero() {
			v.Check(f.SalePrice.Float() < f.Price.Float(), "sale_price", "Sale price must be lower than the price.")
		}
		return f, v.Errors()
	}
}

// VariantDelete handles POST /variants/{id}/delete. Plain form posts carry
// product_id so the browser lands back on the product's variants.
func (h *UIHandlers) VariantDelete(w http.ResponseWriter, r *http.Request) {
	var productID int64
	if err := parseForm(r); err == nil {
		if p := formIDPtr(r, "product_id"); p != nil {
			productID = *p
		}
	}
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Variant",
		Delete:       h.catalog(r).Admin().Variants().Delete,
		RedirectPath: variantsPath(productID),
	})
}

// queryID reads a positive id from the query string, or zero.
func queryID(r *http.Request, key string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
