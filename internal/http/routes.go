package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Blog     *service.BlogService
	Messages *service.MessageService
	Skills   *service.SkillService
	Stats    *service.StatsService
	Images   core.ImageStore
	// LocalUploadDir, when non-empty, is served read-only under /uploads.
	LocalUploadDir string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewRouter creates and configures the HTTP router. Public read endpoints
// need no token; everything that mutates content requires an admin bearer
// token, as does the contact inbox.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	adminOnly := RequireAdmin(services.Auth)

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, Logger: services.Logger})
	registerProjectRoutes(mux, &ProjectHandlers{Svc: services.Projects}, adminOnly)
	registerBlogRoutes(mux, &BlogHandlers{Svc: services.Blog}, adminOnly)
	registerMessageRoutes(mux, &MessageHandlers{Svc: services.Messages}, adminOnly)
	registerSkillRoutes(mux, &SkillHandlers{Svc: services.Skills}, adminOnly)

	statsHandlers := &StatsHandlers{Svc: services.Stats}
	mux.Handle("GET /api/stats", adminOnly(http.HandlerFunc(statsHandlers.Get)))

	if services.Images != nil {
		uploadHandlers := &UploadHandlers{
			Store:    services.Images,
			MaxBytes: services.MaxUploadBytes,
			Logger:   services.Logger,
		}
		mux.Handle("POST /api/upload", adminOnly(http.HandlerFunc(uploadHandlers.Upload)))
	}
	if services.LocalUploadDir != "" {
		fileServer := http.FileServer(http.Dir(services.LocalUploadDir))
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", fileServer))
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	if services.Logger != nil {
		handler = Logging(services.Logger)(handler)
		handler = Recover(services.Logger)(handler)
	}
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/verify", h.Verify)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}

// resourceRoutes registers a resource with public reads and admin-only writes.
type resourceRoutes struct {
	Base      string
	Create    http.HandlerFunc
	List      http.HandlerFunc
	GetByID   http.HandlerFunc
	Update    http.HandlerFunc
	Delete    http.HandlerFunc
	AdminOnly func(http.Handler) http.Handler
}

func registerResource(mux *http.ServeMux, cfg resourceRoutes) {
	if cfg.Base == "" || cfg.AdminOnly == nil {
		panic("registerResource: incomplete route config") //nolint:forbidigo // Fail fast during server setup.
	}

	if cfg.List != nil {
		mux.HandleFunc("GET "+cfg.Base, cfg.List)
	}
	if cfg.GetByID != nil {
		mux.HandleFunc("GET "+cfg.Base+"/{id}", cfg.GetByID)
	}
	if cfg.Create != nil {
		mux.Handle("POST "+cfg.Base, cfg.AdminOnly(cfg.Create))
	}
	if cfg.Update != nil {
		mux.Handle("PUT "+cfg.Base+"/{id}", cfg.AdminOnly(cfg.Update))
	}
	if cfg.Delete != nil {
		mux.Handle("DELETE "+cfg.Base+"/{id}", cfg.AdminOnly(cfg.Delete))
	}
}

func registerProjectRoutes(mux *http.ServeMux, h *ProjectHandlers, adminOnly func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/projects/featured", h.ListFeatured)
	registerResource(mux, resourceRoutes{
		Base:      "/api/projects",
		Create:    h.Create,
		List:      h.List,
		GetByID:   h.Get,
		Update:    h.Update,
		Delete:    h.Delete,
		AdminOnly: adminOnly,
	})
}

func registerBlogRoutes(mux *http.ServeMux, h *BlogHandlers, adminOnly func(http.Handler) http.Handler) {
	// The public site reads published posts and fetches them by slug;
	// the bare collection is the full admin listing, drafts included.
	mux.HandleFunc("GET /api/blog/published", h.ListPublished)
	mux.HandleFunc("GET /api/blog/post/{slug}", h.GetBySlug)
	registerResource(mux, resourceRoutes{
		Base:      "/api/blog",
		Create:    h.Create,
		Update:    h.Update,
		Delete:    h.Delete,
		AdminOnly: adminOnly,
	})
	mux.Handle("GET /api/blog", adminOnly(http.HandlerFunc(h.ListAll)))
	mux.Handle("GET /api/blog/{id}", adminOnly(http.HandlerFunc(h.Get)))
}

func registerMessageRoutes(mux *http.ServeMux, h *MessageHandlers, adminOnly func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/contact", h.Submit)
	mux.Handle("GET /api/contact", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("PUT /api/contact/{id}/read", adminOnly(http.HandlerFunc(h.MarkRead)))
	mux.Handle("DELETE /api/contact/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

func registerSkillRoutes(mux *http.ServeMux, h *SkillHandlers, adminOnly func(http.Handler) http.Handler) {
	registerResource(mux, resourceRoutes{
		Base:      "/api/skills",
		Create:    h.Create,
		List:      h.List,
		Update:    h.Update,
		Delete:    h.Delete,
		AdminOnly: adminOnly,
	})
}
