package httpx

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	attributesPath             = "/attributes"
	errMsgUnableLoadAttributes = "Unable to load attributes"
	errMsgUnableLoadValues     = "Unable to load attribute values"
)

// attributeValuesPath is the value list of an attribute.
func attributeValuesPath(attributeID int64) string {
	if attributeID <= 0 {
		return attributesPath
	}
	return attributesPath + "/" + strconv.FormatInt(attributeID, 10) + "/values"
}

type attributeForm struct {
	ID int64
	model.AttributeRequest
}

func attributeFormMeta() func(FormMode) PageMeta { return formMeta("Attribute", PageAttributeForm) }

// Attributes lists attribute types, filtered by ?search=.
func (h *UIHandlers) Attributes(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Attribute, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.Attribute, error) {
			return service.List(ctx, h.catalog(r).Admin().Attributes(), f.Search)
		},
		BasePath:     attributesPath,
		PageMeta:     PageMeta{Title: "Attributes", PageTitle: "Attributes", CurrentPage: PageAttributes},
		ItemsKey:     "Attributes",
		ErrorMessage: errMsgUnableLoadAttributes,
	})
}

// AttributeNew renders the empty attribute form.
func (h *UIHandlers) AttributeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": attributeForm{},
	}, attributeFormMeta(), nil)
}

// AttributeEdit renders the form for an existing attribute.
func (h *UIHandlers) AttributeEdit(w http.ResponseWriter, r *http.Request) {
	a, _, ok := loadRecord(h, w, r, "id", attributesPath, h.catalog(r).Admin().Attributes().Get)
	if !ok {
		return
	}
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": attributeForm{ID: a.ID, AttributeRequest: model.AttributeRequest{
			Name:         a.Name,
			Slug:         a.Slug,
			DisplayOrder: a.DisplayOrder,
		}},
	}, attributeFormMeta(), nil)
}

// AttributeCreate handles POST /attributes.
func (h *UIHandlers) AttributeCreate(w http.ResponseWriter, r *http.Request) {
	h.saveAttribute(w, r, FormModeCreate, 0)
}

// AttributeUpdate handles POST /attributes/{id}.
func (h *UIHandlers) AttributeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveAttribute(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveAttribute(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[attributeForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser: func(r *http.Request) (attributeForm, map[string]string) {
			if err := parseForm(r); err != nil {
				return attributeForm{ID: id}, readFailure()
			}
			f := attributeForm{ID: id, AttributeRequest: model.AttributeRequest{
				Name:         formString(r, "name"),
				Slug:         formString(r, "slug"),
				DisplayOrder: formInt(r, "display_order", 0),
			}}
			v := validation.New().
				Validate("name", f.Name, validation.Required("Name", 100)).
				Validate("slug", f.Slug, validation.Optional("Slug", 100), validation.Slug("Slug")).
				Validate("display_order", formString(r, "display_order"), validation.NonNegativeInt("Display order"))
			return f, v.Errors()
		},
		Save: func(ctx context.Context, f attributeForm) (string, error) {
			_, msg, err := h.catalog(r).SaveAttribute(ctx, f.ID, f.AttributeRequest)
			return msg, err
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderForm(w, r, data, attributeFormMeta(), nil)
		},
		Entity:     "Attribute",
		SuccessURL: attributesPath,
		PageMeta:   attributeFormMeta()(mode),
	})
}

// AttributeDelete handles POST /attributes/{id}/delete.
func (h *UIHandlers) AttributeDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Attribute",
		Delete:       h.catalog(r).Admin().Attributes().Delete,
		RedirectPath: attributesPath,
	})
}

// attributeValueForm is the value form. AttributeID picks the list the
// browser returns to.
type attributeValueForm struct {
	ID          int64
	AttributeID int64
	model.AttributeValueRequest
}

func attributeValueFormMeta() func(FormMode) PageMeta {
	return formMeta("Attribute Value", PageAttributeValueForm)
}

// AttributeValues lists the values of one attribute.
// GET /attributes/{id}/values.
func (h *UIHandlers) AttributeValues(w http.ResponseWriter, r *http.Request) {
	attrID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta:         PageMeta{Title: "Attribute Values", PageTitle: "Attribute Values", CurrentPage: PageAttributeValues},
		ErrorMessage: errMsgUnableLoadValues,
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["AttributeID"] = attrID
			data["Values"] = []model.AttributeValue{}

			admin := h.catalog(r).Admin()
			var (
				attr   model.Attribute
				values []model.AttributeValue
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				attr, err = admin.Attributes().Get(gctx, attrID)
				return err
			})
			g.Go(func() error {
				var err error
				values, err = admin.ValuesOf(gctx, attrID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			data["Attribute"] = attr
			data["Values"] = values
			data["PageTitle"] = attr.Name + " Values"
			return nil
		},
	})
}

// AttributeValueNew renders the empty value form.
// GET /attributes/{id}/values/add.
func (h *UIHandlers) AttributeValueNew(w http.ResponseWriter, r *http.Request) {
	attrID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.renderAttributeValueForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": attributeValueForm{AttributeID: attrID},
	})
}

// AttributeValueEdit renders the form for an existing value.
// GET /attribute-values/{id}/edit?attribute_id=<attribute>.
func (h *UIHandlers) AttributeValueEdit(w http.ResponseWriter, r *http.Request) {
	fallback := queryID(r, "attribute_id")
	val, _, ok := loadRecord(h, w, r, "id", attributeValuesPath(fallback), h.catalog(r).Admin().AttributeValues().Get)
	if !ok {
		return
	}
	attrID := val.AttributeID
	if attrID == 0 {
		attrID = fallback
	}
	h.renderAttributeValueForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": attributeValueForm{
			ID:          val.ID,
			AttributeID: attrID,
			AttributeValueRequest: model.AttributeValueRequest{
				Value:        val.Value,
				DisplayOrder: val.DisplayOrder,
			},
		},
	})
}

func (h *UIHandlers) renderAttributeValueForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if f, ok := data["Form"].(attributeValueForm); ok {
		data["BackURL"] = attributeValuesPath(f.AttributeID)
	}
	h.renderForm(w, r, data, attributeValueFormMeta(), nil)
}

// AttributeValueCreate handles POST /attributes/{id}/values.
func (h *UIHandlers) AttributeValueCreate(w http.ResponseWriter, r *http.Request) {
	attrID, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveAttributeValue(w, r, FormModeCreate, attrID, 0)
}

// AttributeValueUpdate handles POST /attribute-values/{id}.
func (h *UIHandlers) AttributeValueUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveAttributeValue(w, r, FormModeEdit, 0, id)
}

func (h *UIHandlers) saveAttributeValue(w http.ResponseWriter, r *http.Request, mode FormMode, attrID, id int64) {
	form, fieldErrors := parseAttributeValueForm(r, attrID, id)
	HandleForm(FormHandlerOpts[attributeValueForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser: func(*http.Request) (attributeValueForm, map[string]string) {
			return form, fieldErrors
		},
		Save: func(ctx context.Context, f attributeValueForm) (string, error) {
			_, msg, err := h.catalog(r).SaveAttributeValue(ctx, f.AttributeID, f.ID, f.AttributeValueRequest)
			return msg, err
		},
		Renderer:   h.renderAttributeValueForm,
		Entity:     "Value",
		SuccessURL: attributeValuesPath(form.AttributeID),
		PageMeta:   attributeValueFormMeta()(mode),
	})
}

func parseAttributeValueForm(r *http.Request, attrID, id int64) (attributeValueForm, map[string]string) {
	if err := parseForm(r); err != nil {
		return attributeValueForm{ID: id, AttributeID: attrID}, readFailure()
	}
	if attrID == 0 {
		if p := formIDPtr(r, "attribute_id"); p != nil {
			attrID = *p
		}
	}
	f := attributeValueForm{
		ID:          id,
		AttributeID: attrID,
		AttributeValueRequest: model.AttributeValueRequest{
			Value:        formString(r, "value"),
			DisplayOrder: formInt(r, "display_order", 0),
		},
	}
	v := validation.New().
		Validate("value", f.Value, validation.Required("Value", 100)).
		Validate("display_order", formString(r, "display_order"), validation.NonNegativeInt("Display order"))
	return f, v.Errors()
}

// AttributeValueDelete handles POST /attribute-values/{id}/delete.
func (h *UIHandlers) AttributeValueDelete(w http.ResponseWriter, r *http.Request) {
	var attrID int64
	if err := parseForm(r); err == nil {
		if p := formIDPtr(r, "attribute_id"); p != nil {
			attrID = *p
		}
	}
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Value",
		Delete:       h.catalog(r).Admin().AttributeValues().Delete,
		RedirectPath: attributeValuesPath(attrID),
	})
}
