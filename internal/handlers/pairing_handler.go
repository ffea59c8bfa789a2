package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/core/pairing"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
)

type PairingHandler struct {
	manager  *pairing.Manager
	accounts repositories.AccountRepo
}

func NewPairingHandler(manager *pairing.Manager, accounts repositories.AccountRepo) *PairingHandler {
	return &PairingHandler{manager: manager, accounts: accounts}
}

// Start godoc
// @Summary Start a pairing session
// @Description Begin WhatsApp device linking for an account. Replaces any earlier session of the same account.
// @Tags Pairing
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 201 {object} pairing.Snapshot
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/pairing/start [post]
func (h *PairingHandler) Start(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "account_id is required",
		})
	}

	if _, err := h.accounts.GetByID(accountID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "account not found",
		})
	}

	session := h.manager.StartSession(accountID)
	return c.Status(fiber.StatusCreated).JSON(session.Snapshot())
}

// Status godoc
// @Summary Pairing session status
// @Tags Pairing
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} pairing.Snapshot
// @Failure 404 {object} map[string]interface{}
// @Router /api/pairing/{id}/status [get]
func (h *PairingHandler) Status(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "pairing session not found",
		})
	}
	return c.JSON(session.Snapshot())
}

// QR godoc
// @Summary Pairing QR code
// @Description PNG QR of the connection URI, only while the session awaits a scan.
// @Tags Pairing
// @Produce png
// @Param id path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/pairing/{id}/qr [get]
func (h *PairingHandler) QR(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "pairing session not found",
		})
	}

	png, err := h.manager.QRPNG(id)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// Regenerate godoc
// @Summary Regenerate a pairing session
// @Description New token and QR from AWAITING_SCAN or EXPIRED. Not allowed once connected.
// @Tags Pairing
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} pairing.Snapshot
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/pairing/{id}/regenerate [post]
func (h *PairingHandler) Regenerate(c *fiber.Ctx) error {
	session, ok := h.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "pairing session not found",
		})
	}

	if err := session.Regenerate(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(session.Snapshot())
}

func (h *PairingHandler) session(c *fiber.Ctx) (*pairing.Session, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, false
	}
	return h.manager.Get(id)
}
