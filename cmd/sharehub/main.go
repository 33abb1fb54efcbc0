// Package main is the entry point for the sharehub API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"sharehub/internal/cache"
	"sharehub/internal/config"
	"sharehub/internal/database"
	"sharehub/internal/handlers"
	"sharehub/internal/router"
	"sharehub/internal/service"
	"sharehub/internal/storage"
	"sharehub/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the default categories in development (no-op if present).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the category cache (optional).
	var categoryCache service.CategoryCache
	if cfg.HasCache() {
		var valkeyClient *redis.Client
		valkeyClient, err = cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		categoryCache = cache.NewCategoryCache(valkeyClient, cfg.CategoryCacheTTL)
		slog.Info("category cache enabled", "ttl", cfg.CategoryCacheTTL)
	} else {
		slog.Warn("valkey not configured, category cache disabled")
	}

	// Connect to S3-compatible object storage. Without credentials the API
	// still serves reads but rejects uploads.
	var objects service.ObjectStore
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL, cfg.S3PublicRead,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := storageClient.Ping(pingCtx)
		cancel()
		if err != nil {
			slog.Error("s3 bucket not reachable", "bucket", cfg.S3Bucket, "error", err)
			os.Exit(1)
		}
		objects = storageClient
		slog.Info("s3 storage connected", "bucket", storageClient.Bucket(), "endpoint", cfg.S3Endpoint)
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	// Initialize data stores and services.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)

	authService := service.NewAuthService(userStore, objects, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	postService := service.NewPostService(postStore, categoryStore, userStore, objects)
	profileService := service.NewProfileService(userStore, objects)
	categoryService := service.NewCategoryService(categoryStore, categoryCache)

	// Categories change out of band; drop whatever a previous run cached.
	categoryService.Invalidate(ctx)

	// Set up the Chi router with all middleware and routes.
	maxBytes := cfg.MaxUploadBytes()
	r := router.New(
		authService,
		cfg.CORSAllowedOrigins,
		handlers.NewAuth(authService, maxBytes),
		handlers.NewPosts(postService, maxBytes),
		handlers.NewCategories(categoryService),
		handlers.NewProfile(profileService, maxBytes),
	)

	// WriteTimeout must cover two image uploads to object storage.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
