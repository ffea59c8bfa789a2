package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odiabiz/odiabiz-api/internal/core/whatsapp"
	"github.com/odiabiz/odiabiz-api/internal/services"
)

type WebhookHandler struct {
	messages *services.MessageService
}

func NewWebhookHandler(messages *services.MessageService) *WebhookHandler {
	return &WebhookHandler{messages: messages}
}

type inboundPayload struct {
	BusinessNumber string `json:"business_number"`
	From           string `json:"from"`
	Text           string `json:"text"`
}

// InboundMessage godoc
// @Summary Inbound customer message webhook
// @Description Accepts a customer message for a business number and runs the AI reply path. Used by HTTP-based transports and the local demo.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param message body inboundPayload true "Inbound message"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/webhook/message [post]
func (h *WebhookHandler) InboundMessage(c *fiber.Ctx) error {
	var payload inboundPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid payload",
		})
	}
	if payload.BusinessNumber == "" || payload.From == "" || payload.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "business_number, from and text are required",
		})
	}

	// Reply generation can take seconds; ack the webhook immediately.
	go h.messages.HandleInbound(payload.BusinessNumber, whatsapp.InboundMessage{
		From: payload.From,
		Text: payload.Text,
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "received",
	})
}
