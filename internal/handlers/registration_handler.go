package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/odiabiz/odiabiz-api/internal/core/registration"
)

type RegistrationHandler struct {
	submitter *registration.Submitter
}

func NewRegistrationHandler(submitter *registration.Submitter) *RegistrationHandler {
	return &RegistrationHandler{submitter: submitter}
}

// Register godoc
// @Summary Register a business
// @Description Create a trial account for a Nigerian business. The returned account id is the context for the pairing step.
// @Tags Registration
// @Accept json
// @Produce json
// @Param registration body registration.Request true "Registration form"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/register [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req registration.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	account, err := h.submitter.Submit(req)
	if err != nil {
		var verr *registration.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
		case errors.Is(err, registration.ErrAlreadyRegistered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "This WhatsApp number is already registered",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Registration failed. Please try again.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful! 🎉",
		"account": account,
	})
}
