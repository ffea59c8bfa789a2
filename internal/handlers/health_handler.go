package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odiabiz/odiabiz-api/internal/repositories"
)

type HealthHandler struct {
	health repositories.HealthRepo
}

func NewHealthHandler(health repositories.HealthRepo) *HealthHandler {
	return &HealthHandler{health: health}
}

// GetHealth godoc
// @Summary Service health check
// @Description Database liveness probe plus account count
// @Tags Health
// @Produce json
// @Success 200 {object} repositories.HealthStatus
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	probe := h.health.Probe()

	status := fiber.StatusOK
	if probe.Status != "LIVE" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(probe)
}
