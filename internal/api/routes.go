package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/polynews/newsdesk/internal/config"
	"github.com/polynews/newsdesk/internal/importer"
	"github.com/polynews/newsdesk/internal/middleware"
	"github.com/polynews/newsdesk/internal/publisher"
	"github.com/polynews/newsdesk/internal/storage"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, cfg *config.Config, store *storage.PostStore, imp *importer.Importer, pub *publisher.Publisher) {
	handlers := NewHandlers(cfg, store, imp, pub)

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	// News endpoints
	news := api.Group("/news")
	{
		news.Get("", handlers.ListNews)
		news.Get("/:id", handlers.GetNewsByID)
	}

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/import", handlers.ImportArchive)
		admin.Get("/news/drafts", handlers.Drafts)
		admin.Get("/news/scheduled", handlers.Scheduled)
		admin.Post("/news/publish-batch", handlers.PublishBatch)
		admin.Post("/news/:id/publish", handlers.PublishNews)
		admin.Delete("/news/:id", handlers.DeleteNews)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
