package handlers

import (
	"time"

	"bdmart/internal/config"
	"bdmart/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root handles the root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "bdmart API", fiber.Map{
		"name":    "bdmart API",
		"version": "1.0",
	})
}

// HealthCheck reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	return response.Success(c, "OK", fiber.Map{
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).String(),
	})
}

// APIInfo returns API metadata
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return response.Success(c, "bdmart API v1", fiber.Map{
		"version": "v1",
	})
}
