// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

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

	"github.com/mlebrun/otaclub/internal/catalog/anime"
	"github.com/mlebrun/otaclub/internal/catalog/business"
	"github.com/mlebrun/otaclub/internal/catalog/manga"
	"github.com/mlebrun/otaclub/internal/catalog/relation"
	"github.com/mlebrun/otaclub/internal/catalog/tag"
	"github.com/mlebrun/otaclub/internal/platform/config"
	"github.com/mlebrun/otaclub/internal/platform/constants"
	"github.com/mlebrun/otaclub/internal/platform/middleware"
	"github.com/mlebrun/otaclub/internal/review"
	"github.com/mlebrun/otaclub/internal/users/auth"
	"github.com/mlebrun/otaclub/internal/users/sso"
	"github.com/mlebrun/otaclub/internal/webzine/article"
	"github.com/mlebrun/otaclub/internal/webzine/comment"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Health is the /health handler — process status plus dependency checks.
	Health http.HandlerFunc

	// Metrics exposes the Prometheus collectors and instruments requests.
	Metrics *Metrics

	// Auth handles authentication routes (register, login, me).
	Auth *auth.Handler

	// SSO handles the Discourse single sign-on flow.
	SSO *sso.Handler

	// Anime handles the anime catalogue.
	Anime *anime.Handler

	// Manga handles the manga catalogue.
	Manga *manga.Handler

	// Business manages studios, publishers, and other companies.
	Business *business.Handler

	// Tag manages tags and their fiche links.
	Tag *tag.Handler

	// Relation serves fiche-to-fiche related content.
	Relation *relation.Handler

	// Review handles member critiques and rating aggregates.
	Review *review.Handler

	// Article handles the webzine articles.
	Article *article.Handler

	// Comment handles article comments and their moderation queue.
	Comment *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(h.Metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes and telemetry.
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	// # Discourse SSO
	// Lives outside /api: the forum redirects browsers here directly.
	r.Route("/sso", h.SSO.RegisterRoutes)

	// # Application API
	// Domain-specific route groups.
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)
		api.Route("/animes", h.Anime.RegisterRoutes)
		api.Route("/mangas", h.Manga.RegisterRoutes)
		api.Route("/businesses", h.Business.RegisterRoutes)
		api.Route("/tags", h.Tag.RegisterRoutes)
		api.Route("/relations", h.Relation.RegisterRoutes)
		api.Route("/reviews", h.Review.RegisterRoutes)
		api.Route("/articles", func(articles chi.Router) {
			h.Article.RegisterRoutes(articles)
			h.Comment.RegisterArticleRoutes(articles)
		})
		api.Route("/comments", h.Comment.RegisterAdminRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
