package handlers

import (
	"errors"
	"strconv"

	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/core/services"
	"bdmart/internal/pkg/pagination"
	"bdmart/internal/pkg/password"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrator account management endpoints
type AdminHandler struct {
	authService *services.AdminAuthService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *services.AdminAuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// UpdateProfileRequest represents profile update request body
type UpdateProfileRequest struct {
	Email string `json:"email"`
}

// UpdateProfile updates the authenticated admin's profile
// @Summary Update admin profile
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Response
// @Router /admin/profile [put]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	adminID, ok := c.Locals("adminID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.authService.UpdateProfile(c.Context(), adminID, &services.UpdateProfileInput{
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already in use")
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated", fiber.Map{
		"admin": admin.ToResponse(),
	})
}

// ChangePasswordRequest represents password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword changes the authenticated admin's password
// @Summary Change admin password
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} response.Response
// @Router /admin/password [put]
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	adminID, ok := c.Locals("adminID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !password.Validate(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := h.authService.ChangePassword(c.Context(), adminID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Current password is incorrect")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed", nil)
}

// ListAdmins lists admin accounts
// @Summary List admin accounts
// @Tags Admin
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	admins, total, err := h.authService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list accounts")
	}

	items := make([]*models.AdminUserResponse, 0, len(admins))
	for _, a := range admins {
		items = append(items, a.ToResponse())
	}

	return c.JSON(pagination.NewResponse(items, params, total))
}

// SetStatusRequest represents status toggle request body
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus toggles an admin account between active and inactive
// @Summary Set admin account status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param body body SetStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.SetStatus(c.Context(), uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be 'active' or 'inactive'")
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated", nil)
}
