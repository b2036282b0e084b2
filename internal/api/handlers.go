package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/polynews/newsdesk/internal/config"
	"github.com/polynews/newsdesk/internal/importer"
	"github.com/polynews/newsdesk/internal/logger"
	"github.com/polynews/newsdesk/internal/middleware"
	"github.com/polynews/newsdesk/internal/models"
	"github.com/polynews/newsdesk/internal/publisher"
	"github.com/polynews/newsdesk/internal/storage"
)

type Handlers struct {
	config    *config.Config
	store     *storage.PostStore
	importer  *importer.Importer
	publisher *publisher.Publisher
	validator *middleware.Validator
}

func NewHandlers(cfg *config.Config, store *storage.PostStore, imp *importer.Importer, pub *publisher.Publisher) *Handlers {
	return &Handlers{
		config:    cfg,
		store:     store,
		importer:  imp,
		publisher: pub,
		validator: middleware.NewValidator(),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ListNews handles GET /news. Anonymous callers see only published posts
// whose publish date has passed; admins see everything and may filter by
// status and by the no-news flag.
func (h *Handlers) ListNews(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 20
	}

	filter := h.listFilter(c)

	posts, err := h.store.List(c.Context(), page, pageSize, filter)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing news")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get news",
		})
	}

	return c.JSON(fiber.Map{
		"page":      page,
		"page_size": pageSize,
		"total":     len(posts),
		"items":     posts,
	})
}

func (h *Handlers) listFilter(c *fiber.Ctx) func(*models.NewsPost) bool {
	now := time.Now()
	if !middleware.IsAdmin(c, h.config.AdminAPIKey) {
		return func(p *models.NewsPost) bool { return p.Visible(now) }
	}

	status := models.Status(c.Query("status"))
	noNews := c.Query("no_news")
	return func(p *models.NewsPost) bool {
		if status != "" && p.Status != status {
			return false
		}
		if noNews != "" {
			want := noNews == "true" || noNews == "1" || noNews == "yes"
			if p.NoNewsFound != want {
				return false
			}
		}
		return true
	}
}

// GetNewsByID handles GET /news/:id
func (h *Handlers) GetNewsByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "News ID is required",
		})
	}

	post, err := h.store.Get(c.Context(), id)
	if err != nil {
		if !errors.Is(err, storage.ErrPostNotFound) {
			logger.Get().Error().Err(err).Str("id", id).Msg("Error getting news post")
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "News not found",
		})
	}

	if !middleware.IsAdmin(c, h.config.AdminAPIKey) && !post.Visible(time.Now()) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "News not found",
		})
	}

	return c.JSON(post)
}

// Drafts handles GET /admin/news/drafts
func (h *Handlers) Drafts(c *fiber.Ctx) error {
	return h.listByStatus(c, models.StatusDraft)
}

// Scheduled handles GET /admin/news/scheduled
func (h *Handlers) Scheduled(c *fiber.Ctx) error {
	return h.listByStatus(c, models.StatusScheduled)
}

func (h *Handlers) listByStatus(c *fiber.Ctx, status models.Status) error {
	posts, err := h.store.ListByStatus(c.Context(), status)
	if err != nil {
		logger.Get().Error().Err(err).Str("status", string(status)).Msg("Error listing news")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get news",
		})
	}
	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// ImportArchive handles POST /admin/import. The uploaded ZIP is spooled to a
// temporary file and handed to the import pipeline synchronously.
func (h *Handlers) ImportArchive(c *fiber.Ctx) error {
	file, err := c.FormFile("archive")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "archive file is required",
		})
	}

	if file.Size > h.config.MaxArchiveSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("archive exceeds the %d byte limit", h.config.MaxArchiveSize),
		})
	}

	tmp, err := os.CreateTemp("", "upload-*.zip")
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to create temp file for upload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept upload",
		})
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(file, tmpPath); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to save uploaded archive")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept upload",
		})
	}

	author := c.FormValue("author", "admin")

	result, err := h.importer.ImportArchive(c.Context(), tmpPath, author)
	if err != nil {
		return h.importError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// importError maps the import pipeline's named failure kinds onto statuses.
// Format errors are the uploader's to fix and must name the specific cause.
func (h *Handlers) importError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, importer.ErrAlreadyImported):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, importer.ErrBadArchive),
		errors.Is(err, importer.ErrNoDocument),
		errors.Is(err, importer.ErrUndecodable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Get().Error().Err(err).Msg("Import failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Import failed",
		})
	}
}

// PublishNews handles POST /admin/news/:id/publish
func (h *Handlers) PublishNews(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "News ID is required",
		})
	}

	post, err := h.publisher.Publish(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, publisher.ErrNotDraft):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, publisher.ErrMissingSource):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			logger.Get().Error().Err(err).Str("id", id).Msg("Error publishing news post")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to publish news",
			})
		}
	}

	return c.JSON(post)
}

// PublishBatchRequest is the body of POST /admin/news/publish-batch.
type PublishBatchRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// PublishBatch handles POST /admin/news/publish-batch. Posts are published
// sequentially; per-post failures are aggregated, never fatal to the batch.
func (h *Handlers) PublishBatch(c *fiber.Ctx) error {
	var req PublishBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": h.validator.FieldErrors(err),
		})
	}

	result := h.publisher.PublishBatch(c.Context(), req.IDs)
	return c.JSON(result)
}

// DeleteNews handles DELETE /admin/news/:id
func (h *Handlers) DeleteNews(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "News ID is required",
		})
	}

	if err := h.store.Delete(c.Context(), id); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.Get().Error().Err(err).Str("id", id).Msg("Error deleting news post")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete news",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "News post deleted successfully",
	})
}
