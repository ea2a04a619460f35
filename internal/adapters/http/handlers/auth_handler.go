package handlers

import (
	"errors"
	"strings"

	"bdmart/internal/adapters/http/middleware"
	"bdmart/internal/config"
	"bdmart/internal/core/services"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles administrator authentication endpoints
type AuthHandler struct {
	authService *services.AdminAuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AdminAuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// LoginRequest represents admin login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles administrator login
// @Summary Admin login
// @Description Authenticate an administrator and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.AdminLoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, services.ErrAdminInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	middleware.SetAdminCookie(c, h.cfg, result.Token, result.ExpiresAt)

	return response.Success(c, "Login successful", fiber.Map{
		"admin": result.Admin,
	})
}

// Logout clears the admin session cookie
// @Summary Admin logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearAdminCookie(c, h.cfg)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current administrator
// @Summary Current admin
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	adminID, ok := c.Locals("adminID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	admin, err := h.authService.GetByID(c.Context(), adminID)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	return response.Success(c, "Account retrieved", fiber.Map{
		"admin": admin.ToResponse(),
	})
}
