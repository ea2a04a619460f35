package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bdmart/internal/config"
	"bdmart/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Policy
	}{
		{"root", "/", PolicyPublic},
		{"health", "/health", PolicyPublic},
		{"api info", "/api/v1", PolicyPublic},
		{"api info trailing slash", "/api/v1/", PolicyPublic},
		{"admin login", "/api/v1/auth/login", PolicyPublic},
		{"customer register", "/api/v1/customer/register", PolicyPublic},
		{"customer verify", "/api/v1/customer/verify", PolicyPublic},
		{"customer login", "/api/v1/customer/login", PolicyPublic},
		{"forgot password", "/api/v1/customer/password/forgot", PolicyPublic},
		{"reset password", "/api/v1/customer/password/reset", PolicyPublic},
		{"payment claim", "/api/v1/payments/verify", PolicyPublic},
		{"payment accounts", "/api/v1/payment-accounts", PolicyPublic},
		{"swagger", "/swagger/index.html", PolicyPublic},

		{"admin logout", "/api/v1/auth/logout", PolicyAdmin},
		{"admin me", "/api/v1/auth/me", PolicyAdmin},
		{"admin root", "/api/v1/admin", PolicyAdmin},
		{"admin payments", "/api/v1/admin/payments", PolicyAdmin},
		{"admin users status", "/api/v1/admin/users/3/status", PolicyAdmin},
		{"admin payment accounts", "/api/v1/admin/payment-accounts/bKash", PolicyAdmin},

		{"customer me", "/api/v1/customer/me", PolicyCustomer},
		{"unknown api path", "/api/v1/orders", PolicyCustomer},
		{"admin lookalike outside prefix", "/api/v1/administrators", PolicyCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Fatalf("Classify(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func guardTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			AdminSecret:       "admin-test-secret",
			CustomerSecret:    "customer-test-secret",
			AdminTokenHours:   24,
			CustomerTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "Lax"},
	}
}

func newGuardedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(Guard(cfg))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/health", ok)
	app.Get("/api/v1/auth/me", ok)
	app.Get("/api/v1/admin/payments", ok)
	app.Get("/api/v1/customer/me", ok)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestGuardPublicPathNeedsNoCredential(t *testing.T) {
	app := newGuardedApp(guardTestConfig())

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGuardAdminSurface(t *testing.T) {
	cfg := guardTestConfig()
	app := newGuardedApp(cfg)

	adminToken, _, err := jwt.GenerateAdminToken(1, "admin", "admin", cfg.JWT.AdminSecret, 24)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	staffToken, _, err := jwt.GenerateAdminToken(2, "staffer", "staff", cfg.JWT.AdminSecret, 24)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments", nil))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("invalid cookie is unauthorized and cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "garbage"})
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}

		var cleared bool
		for _, cookie := range resp.Cookies() {
			if cookie.Name == AdminCookieName && cookie.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Fatal("expected the bad session cookie to be cleared")
		}
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: staffToken})
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("admin cookie passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/payments", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: adminToken})
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("customer bearer token does not open the admin surface", func(t *testing.T) {
		customerToken, err := jwt.GenerateCustomerToken(5, "01712345678", cfg.JWT.CustomerSecret, 7)
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+customerToken)
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestGuardCustomerSurface(t *testing.T) {
	cfg := guardTestConfig()
	app := newGuardedApp(cfg)

	t.Run("no bearer token is unauthorized", func(t *testing.T) {
		resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/customer/me", nil))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/me", nil)
		req.Header.Set("Authorization", "Token abcdef")
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("valid bearer token passes", func(t *testing.T) {
		token, err := jwt.GenerateCustomerToken(5, "01712345678", cfg.JWT.CustomerSecret, 7)
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("admin cookie does not open the customer surface", func(t *testing.T) {
		adminToken, _, err := jwt.GenerateAdminToken(1, "admin", "admin", cfg.JWT.AdminSecret, 24)
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/me", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: adminToken})
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestOptionalCustomerAuth(t *testing.T) {
	cfg := guardTestConfig()
	app := fiber.New()
	app.Post("/api/v1/payments/verify", OptionalCustomerAuth(cfg), func(c *fiber.Ctx) error {
		if id, ok := c.Locals("customerID").(uint); ok {
			return c.SendString(fmt.Sprintf("customer:%d", id))
		}
		return c.SendString("guest")
	})

	t.Run("guest request passes through", func(t *testing.T) {
		resp := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("bad token is ignored, not rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token, err := jwt.GenerateCustomerToken(3, "01712345678", cfg.JWT.CustomerSecret, 7)
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})
}
