package handlers

import (
	"errors"

	"bdmart/internal/core/services"
	"bdmart/internal/pkg/password"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerAuthHandler handles customer registration, verification and login
type CustomerAuthHandler struct {
	customerService *services.CustomerAuthService
}

// NewCustomerAuthHandler creates a new customer auth handler
func NewCustomerAuthHandler(customerService *services.CustomerAuthService) *CustomerAuthHandler {
	return &CustomerAuthHandler{customerService: customerService}
}

// RegisterRequest represents customer registration request body
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// Register starts customer registration: creates the account in the
// not-verified state and sends a passcode over the out-of-band channel.
// The passcode is never part of the response.
// @Summary Register customer
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customer/register [post]
func (h *CustomerAuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" {
		return response.BadRequest(c, "Phone number is required")
	}

	if err := h.customerService.Register(c.Context(), req.Phone, req.Name); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicatePhone):
			return response.Conflict(c, "Phone number already registered")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	return response.Created(c, "Registration started, check your phone for the verification code", nil)
}

// VerifyRequest represents verification request body
type VerifyRequest struct {
	Phone    string `json:"phone"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// Verify completes registration with the passcode and chosen password
// @Summary Verify customer phone
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Phone, passcode and password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /customer/verify [post]
func (h *CustomerAuthHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" || req.OTP == "" || req.Password == "" {
		return response.BadRequest(c, "Phone, OTP and password are required")
	}
	if !password.Validate(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := h.customerService.Verify(c.Context(), req.Phone, req.OTP, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownPhone), errors.Is(err, services.ErrInvalidPasscode):
			// One message for both: don't reveal whether the phone exists.
			return response.BadRequest(c, "Invalid phone number or passcode")
		default:
			return response.InternalServerError(c, "Failed to verify")
		}
	}

	return response.Success(c, "Account verified, you can now log in", nil)
}

// CustomerLoginRequest represents customer login request body
type CustomerLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates a customer and returns a bearer token
// @Summary Customer login
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body CustomerLoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /customer/login [post]
func (h *CustomerAuthHandler) Login(c *fiber.Ctx) error {
	var req CustomerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" || req.Password == "" {
		return response.BadRequest(c, "Phone and password are required")
	}

	customer, token, err := h.customerService.Login(c.Context(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid phone number or password")
		case errors.Is(err, services.ErrCustomerNotVerified):
			return response.Forbidden(c, "Account not verified yet")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token":    token,
		"customer": customer,
	})
}

// ForgotPasswordRequest represents passcode reset request body
type ForgotPasswordRequest struct {
	Phone string `json:"phone"`
}

// ForgotPassword issues a fresh passcode for password reset. The response is
// the same whether or not the phone is registered, so the endpoint cannot be
// used to enumerate accounts.
// @Summary Request password reset passcode
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Phone number"
// @Success 200 {object} response.Response
// @Router /customer/password/forgot [post]
func (h *CustomerAuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" {
		return response.BadRequest(c, "Phone number is required")
	}

	err := h.customerService.RequestPasscodeReset(c.Context(), req.Phone)
	if err != nil && !errors.Is(err, services.ErrUnknownPhone) {
		return response.InternalServerError(c, "Failed to process request")
	}

	return response.Success(c, "If the phone number is registered, a passcode has been sent", nil)
}

// ResetPasswordRequest represents password reset request body
type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ResetPassword replaces the password after passcode proof
// @Summary Reset customer password
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Phone, passcode and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /customer/password/reset [post]
func (h *CustomerAuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" || req.OTP == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Phone, OTP and new password are required")
	}
	if !password.Validate(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := h.customerService.ChangePassword(c.Context(), req.Phone, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownPhone), errors.Is(err, services.ErrInvalidPasscode):
			return response.BadRequest(c, "Invalid phone number or passcode")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password updated, you can now log in", nil)
}

// Me returns the authenticated customer's profile
// @Summary Current customer
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /customer/me [get]
func (h *CustomerAuthHandler) Me(c *fiber.Ctx) error {
	customerID, ok := c.Locals("customerID").(uint)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	customer, err := h.customerService.GetByID(c.Context(), customerID)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	return response.Success(c, "Account retrieved", fiber.Map{
		"customer": customer.ToResponse(),
	})
}
