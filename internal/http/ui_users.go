package httpx

import (
	"context"
	"net/http"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/validation"
	"github.com/target/storefront-admin/internal/service"
)

const (
	usersPath             = "/users"
	errMsgUnableLoadUsers = "Unable to load users"
	minPasswordLength     = 8
)

// userForm is the user form as submitted. Passwords are never re-rendered.
type userForm struct {
	ID int64
	model.UserRequest
}

func userFormFrom(u model.User) userForm {
	return userForm{
		ID: u.ID,
		UserRequest: model.UserRequest{
			Name:     u.Name,
			Email:    u.Email,
			Phone:    u.Phone,
			IsStaff:  u.IsStaff,
			IsActive: u.IsActive,
		},
	}
}

func userFormMeta() func(FormMode) PageMeta { return formMeta("User", PageUserForm) }

// Users lists users, filtered by ?search=.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[model.User, SearchFilter]{
		Handler:      h,
		W:            w,
		R:            r,
		FilterParser: ParseSearchFilter,
		Fetch: func(ctx context.Context, f SearchFilter) ([]model.User, error) {
			return service.List(ctx, h.catalog(r).Admin().Users(), f.Search)
		},
		BasePath:     usersPath,
		PageMeta:     PageMeta{Title: "Users", PageTitle: "Users", CurrentPage: PageUsers},
		ItemsKey:     "Users",
		ErrorMessage: errMsgUnableLoadUsers,
	})
}

// UserNew renders the empty user form.
func (h *UIHandlers) UserNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeCreate,
		"Form": userForm{UserRequest: model.UserRequest{IsActive: true}},
	}, userFormMeta(), nil)
}

// UserEdit renders the form for an existing user.
func (h *UIHandlers) UserEdit(w http.ResponseWriter, r *http.Request) {
	u, _, ok := loadRecord(h, w, r, "id", usersPath, h.catalog(r).Admin().Users().Get)
	if !ok {
		return
	}
	h.renderForm(w, r, map[string]any{
		"Mode": FormModeEdit,
		"Form": userFormFrom(u),
	}, userFormMeta(), nil)
}

// UserCreate handles POST /users.
func (h *UIHandlers) UserCreate(w http.ResponseWriter, r *http.Request) {
	h.saveUser(w, r, FormModeCreate, 0)
}

// UserUpdate handles POST /users/{id}.
func (h *UIHandlers) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.saveUser(w, r, FormModeEdit, id)
}

func (h *UIHandlers) saveUser(w http.ResponseWriter, r *http.Request, mode FormMode, id int64) {
	HandleForm(FormHandlerOpts[userForm]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    mode,
		Parser:  parseUserForm(mode, id),
		Save: func(ctx context.Context, f userForm) (string, error) {
			_, msg, err := h.catalog(r).SaveUser(ctx, f.ID, f.UserRequest)
			return msg, err
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderForm(w, r, data, userFormMeta(), nil)
		},
		Entity:     "User",
		SuccessURL: usersPath,
		PageMeta:   userFormMeta()(mode),
	})
}

func parseUserForm(mode FormMode, id int64) FormParser[userForm] {
	return func(r *http.Request) (userForm, map[string]string) {
		if err := parseForm(r); err != nil {
			return userForm{ID: id}, readFailure()
		}
		f := userForm{
			ID: id,
			UserRequest: model.UserRequest{
				Name:     formString(r, "name"),
				Email:    formString(r, "email"),
				Phone:    formString(r, "phone"),
				Password: r.PostFormValue("password"),
				IsStaff:  formBool(r, "is_staff"),
				IsActive: formBool(r, "is_active"),
			},
		}

		passwordRules := []validation.Validator{validation.MinLength("Password", minPasswordLength)}
		if mode == FormModeCreate {
			passwordRules = append([]validation.Validator{validation.Required("Password", 128)}, passwordRules...)
		}
		v := validation.New().
			Validate("name", f.Name, validation.Required("Name", 150)).
			Validate("email", f.Email, validation.Email("Email")).
			Validate("phone", f.Phone, validation.Optional("Phone", 20)).
			Validate("password", f.Password, passwordRules...)
		return f, v.Errors()
	}
}

// UserDelete handles POST /users/{id}/delete.
func (h *UIHandlers) UserDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Entity:       "User",
		Delete:       h.catalog(r).Admin().Users().Delete,
		RedirectPath: usersPath,
	})
}
