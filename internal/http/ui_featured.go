package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	featuredPath             = "/featured-sections"
	errMsgUnableLoadFeatured = "Unable to load featured sections"
)

type featuredSectionForm struct {
	ID int64
	model.FeaturedSectionRequest
}

// Picked reports whether a product is selected for the section.
func (f featuredSectionForm) Picked(productID int64) bool {
	for _, id := range f.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func featuredFormFrom(s model.FeaturedSection) featuredSectionForm {
	ids := s.ProductIDs
	if len(ids) == 0 {
		for _, p := range s.Products {
			ids = append(ids, p.ID)
		}
	}
	maxProducts := s.MaxProducts
	if maxProducts <= 0 {
		maxProducts = model.DefaultMaxProducts
	}
	return featuredSectionForm{
		ID: s.ID,
		FeaturedSectionRequest: model.FeaturedSectionRequest{
			Title:        s.Title,
			Subtitle:     s.Subtitle,
			SectionType:  s.SectionType,
			MaxProducts:  maxProducts,
			DisplayOrder: s.DisplayOrder,
			IsActive:     s.IsActive,
			ProductIDs:   ids,
		},
	}
}

func featuredFormMeta() func(FormMode) PageMeta {
	return formMeta("Featured Section", PageFeaturedSectionForm)
}

// FeaturedSections lists homepage sections, filtered by ?search=.
func (h *UIHandlers) FeaturedSections(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.FeaturedSection, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.FeaturedSection, error) {
			return service.List(ctx, h.catalog(r).Admin().FeaturedSections(), f.Search)
		},
		BasePath:     featuredPath,
		PageMeta:     PageMeta{Title: "Featured Sections", PageTitle: "Featured Sections", CurrentPage: PageFeaturedSections},
		ItemsKey:     "Sections",
		ErrorMessage: errMsgUnableLoadFeatured,
	})
}

// FeaturedSectionNew renders the empty section form.
func (h *UIHandlers) FeaturedSectionNew(w http.ResponseWriter, r *http.Request) {
	h.renderFeaturedForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": featuredSectionForm{FeaturedSectionRequest: model.FeaturedSectionRequest{
			SectionType: model.SectionCustom,
			MaxProducts: model.DefaultMaxProducts,
			IsActive:    true,
		}},
	})
}

// FeaturedSectionEdit renders the form for an existing section.
func (h *UIHandlers) FeaturedSectionEdit(w http.ResponseWriter, r *http.Request) {
	s, _, ok := loadRecord(h, w, r, "id", featuredPath, h.catalog(r).Admin().FeaturedSections().Get)
	if !ok {
		return
	}
	h.renderFeaturedForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": featuredFormFrom(s),
	})
}

// renderFeaturedForm adds section types and the product picker.
func (h *UIHandlers) renderFeaturedForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderForm(w, r, data, featuredFormMeta(), func(ctx context.Context, data map[string]any) error {
		data["SectionTypes"] = model.SectionTypes()
		data["Products"] = []model.Product{}
		products, err := h.catalog(r).ProductChoices(ctx)
		if err != nil {
			return err
		}
		data["Products"] = products
		return nil
	})
}

// FeaturedSectionCreate handles POST /featured-sections.
func (h *UIHandlers) FeaturedSectionCreate(w http.ResponseWriter, r *http.Request) {
	h.saveFeaturedSection(w, r, FormModeCreate, 0)
}

// FeaturedSectionUpdate handles POST /featured-sections/{id}.
func (h *UIHandlers) FeaturedSectionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveFeaturedSection(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveFeaturedSection(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[featuredSectionForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseFeaturedForm(id),
		Save: func(ctx context.Context, f featuredSectionForm) (string, error) {
			_, msg, err := h.catalog(r).SaveFeaturedSection(ctx, f.ID, f.FeaturedSectionRequest)
			return msg, err
		},
		Renderer:   h.renderFeaturedForm,
		Entity:     "Featured section",
		SuccessURL: featuredPath,
		PageMeta:   featuredFormMeta()(mode),
	})
}

func parseFeaturedForm(id int64) FormParser[featuredSectionForm] {
	return func(r *http.Request) (featuredSectionForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return featuredSectionForm{ID: id}, readFailure()
		}
		f := featuredSectionForm{
			ID: id,
			FeaturedSectionRequest: model.FeaturedSectionRequest{
				Title:        formString(r, "title"),
				Subtitle:     formString(r, "subtitle"),
				SectionType:  formString(r, "section_type"),
				MaxProducts:  formInt(r, "max_products", model.DefaultMaxProducts),
				DisplayOrder: formInt(r, "display_order", 0),
				IsActive:     formBool(r, "is_active"),
				ProductIDs:   formIDs(r, "product_ids"),
			},
		}

		types := make([]string, 0, len(model.SectionTypes()))
		for _, c := range model.SectionTypes() {
			types = append(types, c.Value)
		}
		v := validation.New().
			Validate("title", f.Title, validation.Required("Title", 200)).
			Validate("subtitle", f.Subtitle, validation.Optional("Subtitle", 300)).
			Validate("section_type", f.SectionType, validation.OneOf("Section type", types)).
			Validate("max_products", formString(r, "max_products"), validation.IntRange("Max products", 1, 100)).
			Validate("display_order", formString(r, "display_order"), validation.NonNegativeInt("Display order"))
		if f.SectionType == model.SectionCustom && f.MaxProducts > 0 {
			v.Check(len(f.ProductIDs) <= f.MaxProducts, "product_ids", "Select at most the maximum number of products.")
		}
		return f, v.Errors()
	}
}

// FeaturedSectionToggle flips a section's active flag.
// POST /featured-sections/{id}/toggle.
func (h *UIHandlers) FeaturedSectionToggle(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, "Featured section", featuredPath, h.catalog(r).ToggleFeaturedSection)
}

// FeaturedSectionDelete handles POST /featured-sections/{id}/delete.
func (h *UIHandlers) FeaturedSectionDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Featured section",
		Delete:       h.catalog(r).Admin().FeaturedSections().Delete,
		RedirectPath: featuredPath,
	})
}
