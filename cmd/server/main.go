package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/polynews/newsdesk/internal/api"
	"github.com/polynews/newsdesk/internal/cache"
	"github.com/polynews/newsdesk/internal/config"
	"github.com/polynews/newsdesk/internal/importer"
	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/media"
	"github.com/polynews/newsdesk/internal/middleware"
	"github.com/polynews/newsdesk/internal/publisher"
	"github.com/polynews/newsdesk/internal/storage"
	"github.com/polynews/newsdesk/internal/translate"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting newsdesk...")

	// Import dedup cache; Redis in production, in-memory when unavailable
	var importCache cache.ImportCache
	importCache, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory import cache")
		importCache = cache.NewMockImportCache()
	}
	defer func() {
		if err := importCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing import cache")
		}
	}()

	ctx := context.Background()

	blobs, err := storage.NewBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media storage")
	}

	store, err := storage.NewPostStore(cfg.PostsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize post storage")
	}

	imp, err := importer.New(store, media.NewBinder(blobs), importCache, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize importer")
	}

	translator := translate.New(translate.Config{
		Enabled:     cfg.TranslationEnabled,
		Provider:    cfg.TranslationProvider,
		APIKey:      cfg.TranslationAPIKey,
		Model:       cfg.TranslationModel,
		BaseURL:     cfg.TranslationBaseURL,
		Timeout:     cfg.TranslationTimeout,
		BulkTimeout: cfg.TranslationBulkTimeout,
	})

	pub := publisher.New(store, translator)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    int(cfg.MaxArchiveSize),
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// Locally stored media is served by the app itself
	if cfg.MediaBackend == "local" {
		app.Static(cfg.MediaBaseURL, cfg.MediaPath)
	}

	api.SetupRoutes(app, cfg, store, imp, pub)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
