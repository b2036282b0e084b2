package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/polynews/newsdesk/internal/logger"
)

// AdminKeyHeader carries the admin API key on protected routes.
const AdminKeyHeader = "X-API-Key"

// AdminOnly guards the import/publish surface. Requests must present the
// configured admin key; an empty configured key locks the surface entirely.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get(AdminKeyHeader)
		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Admin access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required",
			})
		}

		if adminKey == "" || apiKey != adminKey {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized admin access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}

// IsAdmin reports whether the request carries the configured admin key.
// Read endpoints use it to widen visibility without rejecting anonymous
// callers.
func IsAdmin(c *fiber.Ctx, adminKey string) bool {
	return adminKey != "" && c.Get(AdminKeyHeader) == adminKey
}
