package handlers

import (
	"errors"

	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/core/services"
	"bdmart/internal/pkg/pagination"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles checkout payment reconciliation and the admin
// ledger audit view
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// VerifyPaymentRequest represents a checkout payment claim
type VerifyPaymentRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
}

// VerifyPayment matches a claimed transaction against the payment ledger.
// When the caller is an authenticated customer the claim is stamped with
// their identity; guest checkouts pass name and phone in the body.
// @Summary Verify checkout payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body VerifyPaymentRequest true "Payment claim"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/verify [post]
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TransactionID == "" {
		return response.BadRequest(c, "Transaction ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	input := &services.ReconcileInput{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}

	// Logged-in customers get their identity from the token, not the body.
	if customerID, ok := c.Locals("customerID").(uint); ok {
		input.CustomerID = &customerID
		if phone, ok := c.Locals("customerPhone").(string); ok && phone != "" {
			input.CustomerPhone = phone
		}
	}
	if input.CustomerPhone == "" {
		return response.BadRequest(c, "Customer phone is required")
	}

	if err := h.paymentService.Reconcile(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction ID not found")
		case errors.Is(err, services.ErrAmountMismatch):
			return response.BadRequest(c, "Claimed amount does not match the recorded payment")
		case errors.Is(err, services.ErrTransactionConsumed):
			return response.BadRequest(c, "Transaction ID has already been used")
		default:
			return response.InternalServerError(c, "Failed to verify payment")
		}
	}

	return response.Success(c, "Payment verified", fiber.Map{
		"transaction_id": req.TransactionID,
		"amount":         req.Amount,
	})
}

// ListLedger returns the paginated ledger audit view for admins
// @Summary List payment ledger
// @Tags Payments
// @Produce json
// @Security CookieAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param provider query string false "Filter by provider (bKash, Nagad)"
// @Param status query string false "Filter by status (not_verified, verified)"
// @Param sort_by query string false "Sort order (created_at, amount)"
// @Success 200 {object} response.Response
// @Router /admin/payments [get]
func (h *PaymentHandler) ListLedger(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.LedgerFilter{
		Provider: c.Query("provider"),
		Status:   c.Query("status"),
		SortBy:   c.Query("sort_by"),
	}

	entries, total, err := h.paymentService.ListLedger(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve ledger")
	}

	return response.Success(c, "Ledger retrieved",
		pagination.NewResponse(entries, params, total))
}
