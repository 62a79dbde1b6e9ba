// lkev.in - terminal portfolio server
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
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/kev1nl1u/lkev.in/internal/api"
	"github.com/kev1nl1u/lkev.in/internal/auth"
	"github.com/kev1nl1u/lkev.in/internal/config"
	"github.com/kev1nl1u/lkev.in/internal/geo"
	"github.com/kev1nl1u/lkev.in/internal/middleware"
	"github.com/kev1nl1u/lkev.in/internal/motd"
	"github.com/kev1nl1u/lkev.in/internal/shell"
	"github.com/kev1nl1u/lkev.in/internal/store"
	"github.com/kev1nl1u/lkev.in/internal/sysinfo"
	"github.com/kev1nl1u/lkev.in/internal/terminal"
	"github.com/kev1nl1u/lkev.in/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	site, err := config.LoadSite(cfg.SitePath)
	if err != nil {
		slog.Error("Failed to load site configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(), "links", len(site.Links))

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	motdStore := motd.NewStore(cfg.MotdPath)

	// Initialize the terminal engine's shared pieces.
	registry := shell.NewRegistry()
	links := shell.NewLinks(site.Links)
	authorizer := auth.New(cfg.SudoPassword, motdStore, registry, links)
	sampler := sysinfo.NewSampler()
	geoClient := geo.NewClient("lkev.in terminal")

	sm := terminal.NewSessionManager()
	wsHandler := terminal.NewWebSocketHandler(terminal.Deps{
		Registry:   registry,
		Links:      links,
		Authorizer: authorizer,
		Stats:      sampler,
		Motd:       motdStore,
		Geo:        geoClient,
		History:    repo,
	}, site, sm, cfg.PollInterval, cfg.FrontendURL, cfg.IsDevelopment())

	apiHandler := api.NewHandler(repo, motdStore, site, authorizer, sampler)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS("*"))

	apiHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/terminal", wsHandler.ServeHTTP)

	// Serve embedded frontend.
	r.Handle("/*", web.Handler())

	// Note: WebSocket sessions are long-lived, so no write timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")
	sm.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
