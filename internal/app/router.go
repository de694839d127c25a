package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/veritas-cms/veritas-cms/internal/auth"
	"github.com/veritas-cms/veritas-cms/internal/directory"
	"github.com/veritas-cms/veritas-cms/internal/enquiries"
	"github.com/veritas-cms/veritas-cms/internal/media"
	"github.com/veritas-cms/veritas-cms/internal/news"
	"github.com/veritas-cms/veritas-cms/internal/observability"
	"github.com/veritas-cms/veritas-cms/internal/posts"
	"github.com/veritas-cms/veritas-cms/internal/settings"
	"github.com/veritas-cms/veritas-cms/internal/subadmin"
	"github.com/veritas-cms/veritas-cms/internal/uploads"
	"github.com/veritas-cms/veritas-cms/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Guard            auth.Guard
	AuthHandler      *auth.Handler
	SubAdminHandler  *subadmin.Handler
	DirectoryHandler *directory.Handler
	PostsHandler     *posts.Handler
	NewsHandler      *news.Handler
	MediaHandler     *media.Handler
	EnquiriesHandler *enquiries.Handler
	SettingsHandler  *settings.Handler
	UploadsHandler   *uploads.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
	UploadDir        string
}

// NewRouter constructs the chi.Router with the full API surface.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		// Public reads and the enquiry submission.
		params.DirectoryHandler.MountPublicRoutes(r)
		params.PostsHandler.MountPublicRoutes(r)
		params.NewsHandler.MountPublicRoutes(r)
		params.MediaHandler.MountPublicRoutes(r)
		params.SettingsHandler.MountPublicRoutes(r)
		params.EnquiriesHandler.MountPublicRoutes(r)

		// Settings update sits outside /admin but is admin-only.
		r.Group(func(r chi.Router) {
			r.Use(params.Guard.RequireAdmin())
			params.SettingsHandler.MountManagementRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/auth", params.AuthHandler.MountAdminRoutes)

			r.Group(func(r chi.Router) {
				r.Use(params.Guard.RequireAdmin())
				params.DirectoryHandler.MountManagementRoutes(r)
				params.PostsHandler.MountManagementRoutes(r)
				params.NewsHandler.MountManagementRoutes(r)
				params.MediaHandler.MountManagementRoutes(r)
				params.EnquiriesHandler.MountManagementRoutes(r)
				params.UploadsHandler.MountManagementRoutes(r)
			})
		})

		r.Route("/subadmin", func(r chi.Router) {
			params.AuthHandler.MountSubAdminRoutes(r)

			// Account management is reserved for administrators.
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.RequireAdmin())
				params.SubAdminHandler.MountManagementRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require())
				params.SubAdminHandler.MountProfileRoutes(r)
			})

			// Module routes enforce the matching capability.
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require(auth.CapLawyers))
				params.DirectoryHandler.MountLawyerManagementRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require(auth.CapServices))
				params.DirectoryHandler.MountServiceManagementRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require(auth.CapPosts))
				params.PostsHandler.MountManagementRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require(auth.CapNews))
				params.NewsHandler.MountManagementRoutes(r)
				params.MediaHandler.MountManagementRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require(auth.CapEnquiries))
				params.EnquiriesHandler.MountManagementRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(params.Guard.Require())
				params.UploadsHandler.MountManagementRoutes(r)
			})
		})

		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.UploadDir != "" {
		fileServer := http.StripPrefix("/upload/", http.FileServer(http.Dir(params.UploadDir)))
		r.Handle("/upload/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with a one hour Cache-Control header.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
