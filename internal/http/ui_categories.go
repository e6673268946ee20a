package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	categoriesPath             = "/categories"
	errMsgUnableLoadCategories = "Unable to load categories"
)

// categoryForm is the category form. CurrentImage is the stored image URL
// shown next to the upload field.
type categoryForm struct {
	ID           int64
	CurrentImage string
	model.CategoryRequest
}

func categoryFormFrom(c model.Category) categoryForm {
	return categoryForm{
		ID:           c.ID,
		CurrentImage: c.Image,
		CategoryRequest: model.CategoryRequest{
			Name:         c.Name,
			Slug:         c.Slug,
			Description:  c.Description,
			ParentID:     c.ParentID,
			IsActive:     c.IsActive,
			DisplayOrder: c.DisplayOrder,
		},
	}
}

func categoryFormMeta() func(FormMode) PageMeta { return formMeta("Category", PageCategoryForm) }

// Categories lists categories, filtered by ?search=.
func (h *UIHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Category, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.Category, error) {
			return service.List(ctx, h.catalog(r).Admin().Categories(), f.Search)
		},
		BasePath:     categoriesPath,
		PageMeta:     PageMeta{Title: "Categories", PageTitle: "Categories", CurrentPage: PageCategories},
		ItemsKey:     "Categories",
		ErrorMessage: errMsgUnableLoadCategories,
	})
}

// CategoryNew renders the empty category form.
func (h *UIHandlers) CategoryNew(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": categoryForm{CategoryRequest: model.CategoryRequest{IsActive: true}},
	})
}

// CategoryEdit renders the form for an existing category.
func (h *UIHandlers) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	c, _, ok := loadRecord(h, w, r, "id", categoriesPath, h.catalog(r).Admin().Categories().Get)
	if !ok {
		return
	}
	h.renderCategoryForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": categoryFormFrom(c),
	})
}

// renderCategoryForm adds the parent choices. A category is never offered
// as its own parent.
func (h *UIHandlers) renderCategoryForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	var self int64
	if f, ok := data["Form"].(categoryForm); ok {
		self = f.ID
	}
	h.renderForm(w, r, data, categoryFormMeta(), func(ctx context.Context, data map[string]any) error {
		data["Parents"] = []model.Category{}
		parents, err := h.catalog(r).CategoryParents(ctx, self)
		if err != nil {
			return err
		}
		data["Parents"] = parents
		return nil
	})
}

// CategoryCreate handles POST /categories.
func (h *UIHandlers) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, FormModeCreate, 0)
}

// CategoryUpdate handles POST /categories/{id}.
func (h *UIHandlers) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveCategory(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveCategory(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[categoryForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseCategoryForm(id),
		Save: func(ctx context.Context, f categoryForm) (string, error) {
			_, msg, err := h.catalog(r).SaveCategory(ctx, f.ID, f.CategoryRequest)
			return msg, err
		},
		Renderer:   h.renderCategoryForm,
		Entity:     "Category",
		SuccessURL: categoriesPath,
		PageMeta:   categoryFormMeta()(mode),
	})
}

func parseCategoryForm(id int64) FormParser[categoryForm] {
	return func(r *http.Request) (categoryForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return categoryForm{ID: id}, readFailure()
		}
		displayOrder := formString(r, "display_order")
		f := categoryForm{
			ID:           id,
			CurrentImage: formString(r, "current_image"),
			CategoryRequest: model.CategoryRequest{
				Name:         formString(r, "name"),
				Slug:         formString(r, "slug"),
				Description:  formString(r, "description"),
				ParentID:     formIDPtr(r, "parent_id"),
				IsActive:     formBool(r, "is_active"),
				DisplayOrder: formInt(r, "display_order", 0),
			},
		}

		v := validation.New().
			Validate("name", f.Name, validation.Required("Name", 100)).
			Validate("slug", f.Slug, validation.Optional("Slug", 100), validation.Slug("Slug")).
			Validate("description", f.Description, validation.Optional("Description", 2000)).
			Validate("display_order", displayOrder, validation.NonNegativeInt("Display order"))
		if id != 0 && f.ParentID != nil {
			v.Check(*f.ParentID != id, "parent_id", "A category cannot be its own parent.")
		}
		img, msg := formUpload(r, "image")
		v.Check(msg == "", "image", msg)
		f.Image = img
		return f, v.Errors()
	}
}

// CategoryDelete handles POST /categories/{id}/delete.
func (h *UIHandlers) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Category",
		Delete:       h.catalog(r).Admin().Categories().Delete,
		RedirectPath: categoriesPath,
	})
}
