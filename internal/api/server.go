// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/config"
	"github.com/taibuivan/dishly/internal/platform/constants"
	"github.com/taibuivan/dishly/internal/platform/middleware"
	"github.com/taibuivan/dishly/internal/platform/storage"
	"github.com/taibuivan/dishly/internal/recipe/category"
	"github.com/taibuivan/dishly/internal/recipe/deletion"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/internal/social/comment"
	"github.com/taibuivan/dishly/internal/social/rating"
	"github.com/taibuivan/dishly/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	// Dish owns the lifecycle endpoints under /dishes, /me/dishes and /admin/dishes.
	Dish *dish.Handler

	// Deletion removes a dish and everything that references it.
	Deletion *deletion.Handler

	Category   *category.Handler
	Collection *collection.Handler
	Rating     *rating.Handler
	Comment    *comment.Handler
	Profile    *profile.Handler

	// Upload is nil when object storage is not configured.
	Upload *storage.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, extraOrigins []string, h Handlers) *Server {
	r := NewRouter(cfg, log, verifier, extraOrigins, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, extraOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, extraOrigins...))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		// Dish-scoped endpoints from several domains share the /dishes/{id} tree,
		// so they register absolute paths instead of mounting sub-routers.
		h.Dish.Register(api)
		h.Deletion.Register(api)
		h.Rating.Register(api)
		h.Comment.Register(api)

		api.Mount("/categories", h.Category.Routes())
		api.Mount("/collections", h.Collection.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/profile", h.Profile.Routes())

		if h.Upload != nil {
			api.Mount("/uploads", h.Upload.Routes())
		}
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
