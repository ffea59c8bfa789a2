package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/odiabiz/odiabiz-api/internal/core/analytics"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
)

const adminListLimit = 10

type AdminHandler struct {
	accounts  repositories.AccountRepo
	analytics *analytics.Aggregator
}

func NewAdminHandler(accounts repositories.AccountRepo, analytics *analytics.Aggregator) *AdminHandler {
	return &AdminHandler{accounts: accounts, analytics: analytics}
}

// RequireKey guards the admin routes with the shared API key header.
// An unset key disables the whole admin surface.
func RequireKey(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "not found",
			})
		}
		provided := c.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin key",
			})
		}
		return c.Next()
	}
}

// ListAccounts godoc
// @Summary Recently registered accounts
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/accounts [get]
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.accounts.ListRecent(adminListLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch accounts",
		})
	}
	return c.JSON(fiber.Map{
		"accounts": accounts,
	})
}

// Stats godoc
// @Summary Platform overview counters
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} analytics.PlatformStats
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.analytics.PlatformOverview()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute platform stats",
		})
	}
	return c.JSON(stats)
}
