// Package main is the entry point for the Wanderly API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderly-app/backend/internal/auth"
	"github.com/wanderly-app/backend/internal/config"
	"github.com/wanderly-app/backend/internal/handler"
	"github.com/wanderly-app/backend/internal/middleware"
	"github.com/wanderly-app/backend/internal/repo"
	"github.com/wanderly-app/backend/internal/service"
	"github.com/wanderly-app/backend/internal/upstream"
	"github.com/wanderly-app/backend/spec"
)

// maxBodySize caps incoming request bodies at 1 MiB — itineraries are JSON,
// not uploads.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Auth -------------------------------------------------------------
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to create token service", "error", err)
		os.Exit(1)
	}

	// --- Repos, services, handlers ----------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	shareRepo := repo.NewShareRepo(pool)
	commentRepo := repo.NewCommentRepo(pool)

	shareTTL := time.Duration(cfg.ShareTTLDays) * 24 * time.Hour
	tripService := service.NewTripService(tripRepo)
	shareService := service.NewShareService(tripRepo, shareRepo, auth.NewPasswordHasher(), shareTTL)
	commentService := service.NewCommentService(shareRepo, commentRepo)

	srv := handler.NewServer(
		tripService,
		shareService,
		commentService,
		upstream.NewGeminiClient(cfg.GeminiAPIKey),
		upstream.NewWeatherClient(cfg.OpenWeatherKey),
		upstream.NewPlacesClient(cfg.PlacesAPIKey),
		upstream.NewPhotosClient(cfg.UnsplashKey),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size limit. Recoverer catches panics and returns HTTP 500
	// instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})
	r.Mount("/", srv.Routes(tokens))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // upstream proxy calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
