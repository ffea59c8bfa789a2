package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/core/dashboard"
)

type DashboardHandler struct {
	aggregator *dashboard.Aggregator
}

func NewDashboardHandler(aggregator *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator}
}

// Get godoc
// @Summary Customer dashboard
// @Description Account state, masked number, recent interactions and counters.
// @Tags Dashboard
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dashboard.Data
// @Failure 404 {object} map[string]interface{}
// @Router /api/dashboard/{accountID} [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountID"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "account not found",
		})
	}

	data, err := h.aggregator.Load(accountID)
	if err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard data",
		})
	}

	return c.JSON(data)
}
