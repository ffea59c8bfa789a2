package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/core/payment"
)

type PaymentHandler struct {
	verifier *payment.Verifier
}

func NewPaymentHandler(verifier *payment.Verifier) *PaymentHandler {
	return &PaymentHandler{verifier: verifier}
}

// Verify godoc
// @Summary Verify a payment by reference
// @Description Single verification request against the gateway; no automatic retry.
// @Tags Payments
// @Produce json
// @Param txRef path string true "Transaction reference"
// @Success 200 {object} map[string]interface{}
// @Router /api/payment/verify/{txRef} [get]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	txRef := c.Params("txRef")
	if txRef == "" {
		txRef = c.Query("tx_ref")
	}

	result := h.verifier.Verify(c.Context(), txRef, c.Query("transaction_id"), accountFromQuery(c))

	// data.status carries the gateway's lowercase status; consumers gate
	// on success && data.status == "successful".
	return c.JSON(fiber.Map{
		"success": result.Outcome == payment.OutcomeSuccessful,
		"data": fiber.Map{
			"status": result.Status,
		},
		"message": result.Message,
	})
}

// Callback godoc
// @Summary Payment gateway redirect callback
// @Description Consumes tx_ref/status/transaction_id from the gateway redirect and returns the navigation hint for the result screen.
// @Tags Payments
// @Produce json
// @Param tx_ref query string false "Transaction reference"
// @Param status query string false "Gateway-reported status"
// @Param transaction_id query string false "Gateway transaction id"
// @Param account_id query string false "Account to upgrade on success"
// @Success 200 {object} map[string]interface{}
// @Router /api/payment/callback [get]
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	result := h.verifier.Verify(
		c.Context(),
		c.Query("tx_ref"),
		c.Query("transaction_id"),
		accountFromQuery(c),
	)

	return c.JSON(fiber.Map{
		"outcome":        string(result.Outcome),
		"status":         result.Status,
		"message":        result.Message,
		"redirect_to":    result.RedirectTo,
		"redirect_after": result.RedirectAfterSeconds(),
	})
}

// accountFromQuery parses the optional account context. uuid.Nil means
// "verify only, upgrade nothing".
func accountFromQuery(c *fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
