package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	storefront "github.com/target/storefront-admin"
	httpassets "github.com/target/storefront-admin/internal/http/assets"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	// Auth opens the per-browser session and backend (required).
	Auth         BrowserOpener
	CookieDomain string
	// Compression enables gzip/deflate of responses at CompressionLevel.
	Compression      bool
	CompressionLevel int
	IsDev            bool // Development mode: templates and static files are read from disk
	Logger           *slog.Logger

	// TemplateFS and StaticFS override the embedded (or, in dev mode, on
	// disk) frontend. Tests point them at the source tree.
	TemplateFS fs.FS
	StaticFS   fs.FS
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the console router.
//
// Middleware order matters: the browser scope must exist before CSRF state
// and the session are loaded, and ForcedLogoutRedirect must wrap LoadSession
// so the backend can report a rejected credential back to it.
func NewRouter(services RouterServices) http.Handler {
	logger := services.logger()
	templateFS, staticFS := frontendFS(services)

	resolver := httpassets.NewResolver(httpassets.Options{
		FS:      staticFS,
		DevMode: services.IsDev,
		Logger:  logger,
	})
	ui := setupUIHandlers(services, templateFS, resolver)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logging(logger))
	r.Use(Recover(logger))
	r.Use(chimw.CleanPath)
	r.Use(BrowserDetection())
	if services.Compression {
		r.Use(chimw.Compress(compressionLevel(services.CompressionLevel)))
	}

	r.Get("/healthz", healthHandler)
	r.Head("/healthz", healthHandler)
	r.Handle("/static/*", staticHandler(staticFS))

	// Unknown paths still load the session so the 404 page knows who is asking.
	notFound := chi.Chain(BrowserScope(services.CookieDomain), LoadSession(services.Auth, logger)).HandlerFunc(ui.NotFound)
	r.NotFound(notFound.ServeHTTP)
	r.MethodNotAllowed(notFound.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(BrowserScope(services.CookieDomain))
		r.Use(CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain, Logger: logger}))
		r.Use(ForcedLogoutRedirect(logger))
		r.Use(LoadSession(services.Auth, logger))

		r.Get(LoginPath, ui.LoginPage)
		r.Post(LoginPath, ui.Login)
		r.Post(LogoutPath, ui.Logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession())
			registerUIRoutes(r, ui)
		})
	})

	return r
}

// registerUIRoutes wires every console screen.
func registerUIRoutes(r chi.Router, h *UIHandlers) {
	r.Get("/", h.Index)

	crud(r, usersPath, crudHandlers{
		List: h.Users, New: h.UserNew, Edit: h.UserEdit,
		Create: h.UserCreate, Update: h.UserUpdate, Delete: h.UserDelete,
	})
	crud(r, categoriesPath, crudHandlers{
		List: h.Categories, New: h.CategoryNew, Edit: h.CategoryEdit,
		Create: h.CategoryCreate, Update: h.CategoryUpdate, Delete: h.CategoryDelete,
	})
	crud(r, brandsPath, crudHandlers{
		List: h.Brands, New: h.BrandNew, Edit: h.BrandEdit,
		Create: h.BrandCreate, Update: h.BrandUpdate, Delete: h.BrandDelete,
	})
	crud(r, productsPath, crudHandlers{
		List: h.Products, New: h.ProductNew, Edit: h.ProductEdit,
		Create: h.ProductCreate, Update: h.ProductUpdate, Delete: h.ProductDelete,
	})
	crud(r, attributesPath, crudHandlers{
		List: h.Attributes, New: h.AttributeNew, Edit: h.AttributeEdit,
		Create: h.AttributeCreate, Update: h.AttributeUpdate, Delete: h.AttributeDelete,
	})
	crud(r, bannersPath, crudHandlers{
		List: h.Banners, New: h.BannerNew, Edit: h.BannerEdit,
		Create: h.BannerCreate, Update: h.BannerUpdate, Delete: h.BannerDelete,
	})
	crud(r, featuredPath, crudHandlers{
		List: h.FeaturedSections, New: h.FeaturedSectionNew, Edit: h.FeaturedSectionEdit,
		Create: h.FeaturedSectionCreate, Update: h.FeaturedSectionUpdate, Delete: h.FeaturedSectionDelete,
	})
	r.Post(bannersPath+"/{id}/toggle", h.BannerToggle)
	r.Post(featuredPath+"/{id}/toggle", h.FeaturedSectionToggle)

	// Variants are listed and created under their product, edited on their own.
	r.Get(productsPath+"/{id}/variants", h.Variants)
	r.Get(productsPath+"/{id}/variants/add", h.VariantNew)
	r.Post(productsPath+"/{id}/variants", h.VariantCreate)
	r.Get("/variants/{id}/edit", h.VariantEdit)
	r.Post("/variants/{id}", h.VariantUpdate)
	r.Post("/variants/{id}/delete", h.VariantDelete)

	r.Get(attributesPath+"/{id}/values", h.AttributeValues)
	r.Get(attributesPath+"/{id}/values/add", h.AttributeValueNew)
	r.Post(attributesPath+"/{id}/values", h.AttributeValueCreate)
	r.Get("/attribute-values/{id}/edit", h.AttributeValueEdit)
	r.Post("/attribute-values/{id}", h.AttributeValueUpdate)
	r.Post("/attribute-values/{id}/delete", h.AttributeValueDelete)

	r.Get(ordersPath, h.Orders)
	r.Get(ordersPath+"/{id}", h.Order)
	r.Post(ordersPath+"/{id}/status", h.OrderStatus)
}

// crudHandlers are the six routes of a plain catalog collection.
type crudHandlers struct {
	List, New, Edit, Create, Update, Delete http.HandlerFunc
}

func crud(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+"/add", h.New)
	r.Get(base+"/{id}/edit", h.Edit)
	r.Post(base, h.Create)
	r.Post(base+"/{id}", h.Update)
	r.Post(base+"/{id}/delete", h.Delete)
}

// frontendFS picks the template and static roots. Dev mode reads from disk
// for hot reloading; production uses the embedded copies.
func frontendFS(services RouterServices) (fs.FS, fs.FS) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if templateFS != nil && staticFS != nil {
		return templateFS, staticFS
	}

	var tfs, sfs fs.FS
	if services.IsDev {
		tfs = os.DirFS(TemplatePathFromRoot)
		sfs = os.DirFS(StaticPathFromRoot)
	} else {
		var err error
		if tfs, err = fs.Sub(storefront.TemplateFS, TemplatePathFromRoot); err != nil {
			services.logger().Warn("embedded templates unavailable, falling back to disk", "error", err)
			tfs = os.DirFS(TemplatePathFromRoot)
		}
		if sfs, err = fs.Sub(storefront.StaticFS, StaticPathFromRoot); err != nil {
			services.logger().Warn("embedded static files unavailable, falling back to disk", "error", err)
			sfs = os.DirFS(StaticPathFromRoot)
		}
	}
	if templateFS == nil {
		templateFS = tfs
	}
	if staticFS == nil {
		staticFS = sfs
	}
	return templateFS, staticFS
}

// setupUIHandlers creates UI handlers with the template renderer. A
// template error leaves the handlers without a renderer; pages then fail
// with a plain 500 and the error is logged once here.
func setupUIHandlers(services RouterServices, templateFS fs.FS, resolver *httpassets.Resolver) *UIHandlers {
	h := &UIHandlers{
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Resolver:   resolver,
		Logger:     services.Logger,
	})
	if err != nil {
		services.logger().Error("failed to create template renderer", slog.Any("error", err))
		return h
	}
	h.T = tr
	return h
}

// staticHandler serves /static/*. Fingerprinted URLs (?v=) are immutable;
// anything else must be revalidated.
func staticHandler(staticFS fs.FS) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(httpassets.VersionParam) != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}

// compressionLevel clamps a configured level to what compress/flate accepts.
func compressionLevel(level int) int {
	switch {
	case level == 0:
		return 5
	case level < 1:
		return 1
	case level > 9:
		return 9
	default:
		return level
	}
}
