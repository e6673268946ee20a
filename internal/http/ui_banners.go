package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/uiutil"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	bannersPath             = "/banners"
	errMsgUnableLoadBanners = "Unable to load banners"
)

type bannerForm struct {
	ID                 int64
	CurrentImage       string
	CurrentMobileImage string
	model.BannerRequest
}

func bannerFormFrom(b model.Banner) bannerForm {
	return bannerForm{
		ID:                 b.ID,
		CurrentImage:       b.Image,
		CurrentMobileImage: b.MobileImage,
		BannerRequest: model.BannerRequest{
			Title:         b.Title,
			Subtitle:      b.Subtitle,
			ButtonText:    b.ButtonText,
			LinkProductID: idPtr(b.SelectedProductID()),
			DisplayOrder:  b.DisplayOrder,
			IsActive:      b.IsActive,
			Authentic:     b.Authentic,
			StartDate:     uiutil.DateInputValue(b.StartDate),
			EndDate:       uiutil.DateInputValue(b.EndDate),
		},
	}
}

func bannerFormMeta() func(FormMode) PageMeta { return formMeta("Banner", PageBannerForm) }

// Banners lists homepage banners, filtered by ?search=.
func (h *UIHandlers) Banners(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.Banner, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.Banner, error) {
			return service.List(ctx, h.catalog(r).Admin().Banners(), f.Search)
		},
		BasePath:     bannersPath,
		PageMeta:     PageMeta{Title: "Banners", PageTitle: "Banners", CurrentPage: PageBanners},
		ItemsKey:     "Banners",
		ErrorMessage: errMsgUnableLoadBanners,
	})
}

// BannerNew renders the empty banner form.
func (h *UIHandlers) BannerNew(w http.ResponseWriter, r *http.Request) {
	h.renderBannerForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": bannerForm{BannerRequest: model.BannerRequest{IsActive: true}},
	})
}

// BannerEdit renders the form for an existing banner.
func (h *UIHandlers) BannerEdit(w http.ResponseWriter, r *http.Request) {
	b, _, ok := loadRecord(h, w, r, "id", bannersPath, h.catalog(r).Admin().Banners().Get)
	if !ok {
		return
	}
	h.renderBannerForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": bannerFormFrom(b),
	})
}

// renderBannerForm adds the products a banner can link to.
func (h *UIHandlers) renderBannerForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderForm(w, r, data, bannerFormMeta(), func(ctx context.Context, data map[string]any) error {
		data["Products"] = []model.Product{}
		products, err := h.catalog(r).ProductChoices(ctx)
		if err != nil {
			return err
		}
		data["Products"] = products
		return nil
	})
}

// BannerCreate handles POST /banners.
func (h *UIHandlers) BannerCreate(w http.ResponseWriter, r *http.Request) {
	h.saveBanner(w, r, FormModeCreate, 0)
}

// BannerUpdate handles POST /banners/{id}.
func (h *UIHandlers) BannerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveBanner(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveBanner(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[bannerForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseBannerForm(id),
		Save: func(ctx context.Context, f bannerForm) (string, error) {
			_, msg, err := h.catalog(r).SaveBanner(ctx, f.ID, f.BannerRequest)
			return msg, err
		},
		Renderer:   h.renderBannerForm,
		Entity:     "Banner",
		SuccessURL: bannersPath,
		PageMeta:   bannerFormMeta()(mode),
	})
}

func parseBannerForm(id int64) FormParser[bannerForm] {
	return func(r *http.Request) (bannerForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return bannerForm{ID: id}, readFailure()
		}
		f := bannerForm{
			ID:                 id,
			CurrentImage:       formString(r, "current_image"),
			CurrentMobileImage: formString(r, "current_mobile_image"),
			BannerRequest: model.BannerRequest{
				Title:         formString(r, "title"),
				Subtitle:      formString(r, "subtitle"),
				ButtonText:    formString(r, "button_text"),
				LinkProductID: formIDPtr(r, "link_product_id"),
				DisplayOrder:  formInt(r, "display_order", 0),
				IsActive:      formBool(r, "is_active"),
				Authentic:     formBool(r, "authentic"),
				StartDate:     formString(r, "start_date"),
				EndDate:       formString(r, "end_date"),
			},
		}

		v := validation.New().
			Validate("title", f.Title, validation.Required("Title", 200)).
			Validate("subtitle", f.Subtitle, validation.Optional("Subtitle", 300)).
			Validate("button_text", f.ButtonText, validation.Optional("Button text", 50)).
			Validate("display_order", formString(r, "display_order"), validation.NonNegativeInt("Display order")).
			Validate("start_date", f.StartDate, validation.Date("Start date")).
			Validate("end_date", f.EndDate, validation.Date("End date"))
		if f.StartDate != "" && f.EndDate != "" {
			v.Check(f.EndDate >= f.StartDate, "end_date", "End date must be after the start date.")
		}

		img, msg := formUpload(r, "image")
		v.Check(msg == "", "image", msg)
		f.Image = img
		mobile, msg := formUpload(r, "mobile_image")
		v.Check(msg == "", "mobile_image", msg)
		f.MobileImage = mobile
		return f, v.Errors()
	}
}

// BannerToggle flips a banner's active flag.
// POST /banners/{id}/toggle.
func (h *UIHandlers) BannerToggle(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, "Banner", bannersPath, h.catalog(r).ToggleBanner)
}

// BannerDelete handles POST /banners/{id}/delete.
func (h *UIHandlers) BannerDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "Banner",
		Delete:       h.catalog(r).Admin().Banners().Delete,
		RedirectPath: bannersPath,
	})
}

// handleToggle flips an active flag and returns to the list with a flash.
func (h *UIHandlers) handleToggle(
	w http.ResponseWriter,
	r *http.Request,
	entity, listPath string,
	toggle func(ctx context.Context, id int64) (string, error),
) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	msg, err := toggle(r.Context(), id)
	if err != nil {
		h.logger().WarnContext(r.Context(), "toggle failed", "entity", entity, "id", id, "error", err)
		_, errMsg := presentError(err, "Unable to update "+strings.ToLower(entity)+" status.")
		h.fail(w, r, errMsg, listPath)
		return
	}
	h.succeed(w, r, orDefault(msg, entity+" status updated"), listPath)
}
