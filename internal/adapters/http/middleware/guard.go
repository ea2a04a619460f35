package middleware

import (
	"strings"
	"time"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/config"
	"bdmart/internal/pkg/jwt"
	"bdmart/internal/pkg/metrics"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminCookieName is the admin session cookie
const AdminCookieName = "admin_token"

// Policy classifies what credential a request path requires
type Policy int

const (
	// PolicyPublic paths are reachable without any credential
	PolicyPublic Policy = iota
	// PolicyCustomer paths require a customer bearer token
	PolicyCustomer
	// PolicyAdmin paths require the admin session cookie with the admin role
	PolicyAdmin
)

// publicPaths are exact-match entry points that must stay reachable without
// a credential: login/registration/reset flows, checkout payment claim and
// the storefront's provider directory.
var publicPaths = map[string]struct{}{
	"/":                                {},
	"/health":                          {},
	"/api/v1":                          {},
	"/api/v1/auth/login":               {},
	"/api/v1/customer/register":        {},
	"/api/v1/customer/verify":          {},
	"/api/v1/customer/login":           {},
	"/api/v1/customer/password/forgot": {},
	"/api/v1/customer/password/reset":  {},
	"/api/v1/payments/verify":          {},
	"/api/v1/payment-accounts":         {},
}

// publicPrefixes are prefix-match public areas
var publicPrefixes = []string{
	"/swagger",
}

// adminPaths are admin-surface paths outside the /admin prefix
var adminPaths = map[string]struct{}{
	"/api/v1/auth/logout": {},
	"/api/v1/auth/me":     {},
}

const adminPrefix = "/api/v1/admin"

// Classify maps a request path to its access policy. Rules are evaluated in
// order: public allowlist first, then the administrative surface, then
// everything else is customer-protected.
func Classify(path string) Policy {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "/"
	}

	if _, ok := publicPaths[path]; ok {
		return PolicyPublic
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return PolicyPublic
		}
	}
	if _, ok := adminPaths[path]; ok {
		return PolicyAdmin
	}
	if path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/") {
		return PolicyAdmin
	}
	return PolicyCustomer
}

// Guard is the single request-interception point enforcing the path policy
// before any protected handler runs. Failures are terminal for the request:
// there is no retry or token refresh here.
func Guard(cfg *config.Config) fiber.Handler {
	m := metrics.Registry("bdmart")

	return func(c *fiber.Ctx) error {
		switch Classify(c.Path()) {
		case PolicyPublic:
			return c.Next()

		case PolicyAdmin:
			token := c.Cookies(AdminCookieName)
			if token == "" {
				m.AuthFailures.WithLabelValues("admin").Inc()
				return response.Unauthorized(c, "Authentication required")
			}

			claims, err := jwt.ValidateAdminToken(token, cfg.JWT.AdminSecret)
			if err != nil {
				// Clear the bad cookie so an expired or corrupted session
				// cannot wedge the client in a re-auth loop.
				ClearAdminCookie(c, cfg)
				m.AuthFailures.WithLabelValues("admin").Inc()
				return response.Unauthorized(c, "Authentication required")
			}

			if claims.Role != models.RoleAdmin {
				// Known principal, insufficient privilege: distinct from
				// unauthenticated.
				m.AuthFailures.WithLabelValues("admin").Inc()
				return response.Forbidden(c, "You don't have permission to access this resource")
			}

			c.Locals("adminID", claims.UserID)
			c.Locals("adminUsername", claims.Username)
			c.Locals("adminRole", claims.Role)
			return c.Next()

		default: // PolicyCustomer
			claims, err := customerClaimsFromHeader(c, cfg)
			if err != nil {
				m.AuthFailures.WithLabelValues("customer").Inc()
				return response.Unauthorized(c, "Authentication required")
			}

			c.Locals("customerID", claims.CustomerID)
			c.Locals("customerPhone", claims.Phone)
			return c.Next()
		}
	}
}

// OptionalCustomerAuth attaches customer claims when a valid bearer token is
// present but never rejects the request. Used on the checkout payment claim,
// which guests may call too.
func OptionalCustomerAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := customerClaimsFromHeader(c, cfg); err == nil {
			c.Locals("customerID", claims.CustomerID)
			c.Locals("customerPhone", claims.Phone)
		}
		return c.Next()
	}
}

func customerClaimsFromHeader(c *fiber.Ctx, cfg *config.Config) (*jwt.CustomerClaims, error) {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, jwt.ErrTokenInvalid
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return jwt.ValidateCustomerToken(token, cfg.JWT.CustomerSecret)
}

// SetAdminCookie delivers a fresh admin session token: HTTP-only,
// path-scoped, SameSite per config, secure in production.
func SetAdminCookie(c *fiber.Ctx, cfg *config.Config, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// ClearAdminCookie expires the admin session cookie
func ClearAdminCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
