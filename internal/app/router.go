package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/arcadia-tracker/arcadia/internal/artists"
	"github.com/arcadia-tracker/arcadia/internal/auth"
	"github.com/arcadia-tracker/arcadia/internal/comments"
	"github.com/arcadia-tracker/arcadia/internal/observability"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
	"github.com/arcadia-tracker/arcadia/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware
	ArtistHandler  *artists.Handler
	CommentHandler *comments.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router serving the JSON API.
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireActor)
			r.Route("/artists", params.ArtistHandler.MountRoutes)
			r.Route("/torrent-requests", params.CommentHandler.MountRoutes)
		})
	})

	return r
}
