package handlers

import (
	"errors"

	"bdmart/internal/core/services"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentAccountHandler handles the provider payment-number directory
type PaymentAccountHandler struct {
	accountService *services.PaymentAccountService
}

// NewPaymentAccountHandler creates a new payment account handler
func NewPaymentAccountHandler(accountService *services.PaymentAccountService) *PaymentAccountHandler {
	return &PaymentAccountHandler{accountService: accountService}
}

// ListAccounts returns the receiving number per provider for the checkout page
// @Summary List payment accounts
// @Tags PaymentAccounts
// @Produce json
// @Success 200 {object} response.Response
// @Router /payment-accounts [get]
func (h *PaymentAccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.accountService.ListAccounts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve payment accounts")
	}

	return response.Success(c, "Payment accounts retrieved", fiber.Map{
		"accounts": accounts,
	})
}

// SetAccountRequest represents the admin payment account update body
type SetAccountRequest struct {
	AccountNumber string `json:"account_number"`
}

// SetAccount sets the receiving number for one provider
// @Summary Set payment account
// @Tags PaymentAccounts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param provider path string true "Provider name (bKash, Nagad)"
// @Param body body SetAccountRequest true "Account number"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/payment-accounts/{provider} [put]
func (h *PaymentAccountHandler) SetAccount(c *fiber.Ctx) error {
	var req SetAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.AccountNumber == "" {
		return response.BadRequest(c, "Account number is required")
	}

	account, err := h.accountService.SetAccount(c.Context(), c.Params("provider"), req.AccountNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownProvider):
			return response.BadRequest(c, "Unknown payment provider")
		default:
			return response.InternalServerError(c, "Failed to set payment account")
		}
	}

	return response.Success(c, "Payment account updated", fiber.Map{
		"account": account,
	})
}
