// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Command api is the entry point for the Otaclub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env honoured in dev).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mlebrun/otaclub/internal/api"
	"github.com/mlebrun/otaclub/internal/catalog/anime"
	"github.com/mlebrun/otaclub/internal/catalog/business"
	"github.com/mlebrun/otaclub/internal/catalog/manga"
	"github.com/mlebrun/otaclub/internal/catalog/relation"
	"github.com/mlebrun/otaclub/internal/catalog/tag"
	"github.com/mlebrun/otaclub/internal/platform/cache"
	"github.com/mlebrun/otaclub/internal/platform/config"
	"github.com/mlebrun/otaclub/internal/platform/constants"
	"github.com/mlebrun/otaclub/internal/platform/migration"
	pgstore "github.com/mlebrun/otaclub/internal/platform/postgres"
	redisstore "github.com/mlebrun/otaclub/internal/platform/redis"
	"github.com/mlebrun/otaclub/internal/platform/sec"
	"github.com/mlebrun/otaclub/internal/platform/upload"
	"github.com/mlebrun/otaclub/internal/review"
	"github.com/mlebrun/otaclub/internal/users/auth"
	"github.com/mlebrun/otaclub/internal/users/sso"
	"github.com/mlebrun/otaclub/internal/webzine/article"
	"github.com/mlebrun/otaclub/internal/webzine/comment"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Otaclub] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// .env is a local-development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.Port),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL(), cfg.MigrationPath, log), "run migrations")

	// ── 6. Platform Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.JWTExpiresIn)
	must(log, err, "initialize jwt service")

	ssoSigner := sec.NewSSOSigner(cfg.DiscourseSSOSecret)
	cacheStore := cache.New(rdb, log)

	uploads, err := upload.NewSaver(cfg.UploadDir)
	must(log, err, "initialize upload directory")

	// ── 7. Health handler (wired with real dependency checkers) ───────────
	healthHandler := api.NewHealthHandler(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	memberRepository := auth.NewPostgresRepository(pool)
	authService := auth.NewService(memberRepository, jwtSvc, auth.BcryptHasher{}, log)
	authHandler := auth.NewHandler(authService, jwtSvc.TTL(), cfg.IsProduction())

	ssoService := sso.NewService(ssoSigner, authService, log)
	ssoHandler := sso.NewHandler(ssoService)

	animeService := anime.NewService(anime.NewPostgresRepository(pool), cacheStore, log)
	animeHandler := anime.NewHandler(animeService, cacheStore, uploads)

	mangaService := manga.NewService(manga.NewPostgresRepository(pool), cacheStore, log)
	mangaHandler := manga.NewHandler(mangaService, cacheStore, uploads)

	businessService := business.NewService(business.NewPostgresRepository(pool), cacheStore, log)
	businessHandler := business.NewHandler(businessService, cacheStore)

	tagService := tag.NewService(tag.NewPostgresRepository(pool), log)
	tagHandler := tag.NewHandler(tagService)

	relationService := relation.NewService(relation.NewPostgresRepository(pool), log)
	relationHandler := relation.NewHandler(relationService)

	reviewService := review.NewService(review.NewPostgresRepository(pool), log)
	reviewHandler := review.NewHandler(reviewService)

	articleService := article.NewService(article.NewPostgresRepository(pool), cacheStore, log)
	articleHandler := article.NewHandler(articleService, cacheStore)

	commentService := comment.NewService(comment.NewPostgresRepository(pool), log)
	commentHandler := comment.NewHandler(commentService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Health:   healthHandler,
		Metrics:  api.NewMetrics(),
		Auth:     authHandler,
		SSO:      ssoHandler,
		Anime:    animeHandler,
		Manga:    mangaHandler,
		Business: businessHandler,
		Tag:      tagHandler,
		Relation: relationHandler,
		Review:   reviewHandler,
		Article:  articleHandler,
		Comment:  commentHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
