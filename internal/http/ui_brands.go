package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	brandsPath             = "/brands"
	errMsgUnableLoadBrands = "Unable to load brands"
)

type brandForm struct {
	ID          int64
	CurrentLogo string
	model.BrandRequest
}

func brandFormFrom(b model.Brand) brandForm {
	return brandForm{
		ID:          b.ID,
		CurrentLogo: b.Logo,
		BrandRequest: model.BrandRequest{
			Name:        b.Name,
			Slug:        b.Slug,
			Description: b.Description,
			Website:     b.Website,
			IsActive:    b.IsActive,
		},
	}
}

func brandFormMeta() func(FormMode) PageMeta { return formMeta("Brand", PageBrandForm) }

// Brands lists brands, filtered by ?search=.
func (h *UIHandlers) Brands(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Brand, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.Brand, error) {
			return service.List(ctx, h.catalog(r).Admin().Brands(), f.Search)
		},
		BasePath:     brandsPath,
		PageMeta:     PageMeta{Title: "Brands", PageTitle: "Brands", CurrentPage: PageBrands},
		ItemsKey:     "Brands",
		ErrorMessage: errMsgUnableLoadBrands,
	})
}

// BrandNew renders the empty brand form.
func (h *UIHandlers) BrandNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": brandForm{BrandRequest: model.BrandRequest{IsActive: true}},
	}, brandFormMeta(), nil)
}

// BrandEdit renders the form for an existing brand.
func (h *UIHandlers) BrandEdit(w http.ResponseWriter, r *http.Request) {
	b, _, ok := loadRecord(h, w, r, "id", brandsPath, h.catalog(r).Admin().Brands().Get)
	if !ok {
		return
	}
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": brandFormFrom(b),
	}, brandFormMeta(), nil)
}

// BrandCreate handles POST /brands.
func (h *UIHandlers) BrandCreate(w http.ResponseWriter, r *http.Request) {
	h.saveBrand(w, r, FormModeCreate, 0)
}

// BrandUpdate handles POST /brands/{id}.
func (h *UIHandlers) BrandUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveBrand(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveBrand(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[brandForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseBrandForm(id),
		Save: func(ctx context.Context, f brandForm) (string, error) {
			_, msg, err := h.catalog(r).SaveBrand(ctx, f.ID, f.BrandRequest)
			return msg, err
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderForm(w, r, data, brandFormMeta(), nil)
		},
		Entity:     "Brand",
		SuccessURL: brandsPath,
		PageMeta:   brandFormMeta()(mode),
	})
}

func parseBrandForm(id int64) FormParser[brandForm] {
	return func(r *http.Request) (brandForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return brandForm{ID: id}, readFailure()
		}
		f := brandForm{
			ID:          id,
			CurrentLogo: formString(r, "current_logo"),
			BrandRequest: model.BrandRequest{
				Name:        formString(r, "name"),
				Slug:        formString(r, "slug"),
				Description: formString(r, "description"),
				Website:     formString(r, "website"),
				IsActive:    formBool(r, "is_active"),
			},
		}

		v := validation.New().
			Validate("name", f.Name, validation.Required("Name", 100)).
			Validate("slug", f.Slug, validation.Optional("Slug", 100), validation.Slug("Slug")).
			Validate("description", f.Description, validation.Optional("Description", 2000)).
			Validate("website", f.Website, validation.Website("Website", 200))
		logo, msg := formUpload(r, "logo")
		v.Check(msg == "", "logo", msg)
		f.Logo = logo
		return f, v.Errors()
	}
}

// BrandDelete handles POST /brands/{id}/delete.
func (h *UIHandlers) BrandDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Brand",
		Delete:       h.catalog(r).Admin().Brands().Delete,
		RedirectPath: brandsPath,
	})
}
