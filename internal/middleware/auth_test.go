package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthApp(adminKey string) *fiber.App {
	app := fiber.New()
	app.Get("/admin", AdminOnly(adminKey), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"valid key", "secret", "secret", fiber.StatusOK},
		{"missing key", "secret", "", fiber.StatusUnauthorized},
		{"wrong key", "secret", "wrong", fiber.StatusForbidden},
		{"no key configured", "", "anything", fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(tc.configured)

			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set(AdminKeyHeader, tc.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}
