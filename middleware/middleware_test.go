package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(GatewayAuthMiddleware("secret", "/metrics"))
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/open", func(c *fiber.Ctx) error { return c.SendString("ok") })
	admin := app.Group("/s/admin", UserContextMiddleware(), RequireRole("admin"))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string))
	})
	return app
}

func TestGatewayAuth(t *testing.T) {
	app := newApp()
	cases := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"missing token", "/open", "", http.StatusUnauthorized},
		{"wrong token", "/open", "Bearer nope", http.StatusUnauthorized},
		{"bearer token", "/open", "Bearer secret", http.StatusOK},
		{"raw token", "/open", "secret", http.StatusOK},
		{"skipped path", "/metrics", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
		})
	}
}

func TestUserContextAndRoles(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/s/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/s/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Roles", "gamer")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/s/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Roles", "gamer, admin")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
}

func TestParseRoles(t *testing.T) {
	got := ParseRoles(" admin, ,gamer ")
	if len(got) != 2 || got[0] != "admin" || got[1] != "gamer" {
		t.Fatalf("unexpected roles %v", got)
	}
	if ParseRoles("") != nil {
		t.Fatalf("expected nil roles for empty header")
	}
}
