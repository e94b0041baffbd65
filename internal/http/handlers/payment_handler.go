package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "zarika/internal/log"
	"zarika/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

// POST /payment/order
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var in struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	gw, err := h.Payments.CreateIntent(c.Context(), in.Amount, in.Currency)
	if err != nil {
		applog.Error(c, "payment.intent.fail", err, nil)
		return fail(c, err)
	}
	applog.Audit(c, "payment.intent", map[string]any{"gateway_order_id": gw.ID, "amount_minor": gw.Amount})
	return c.JSON(gw)
}

// POST /payment/verify
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var in services.VerifyInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if err := h.Payments.Verify(in); err != nil {
		applog.Security(c, "payment.verify.fail", map[string]any{
			"order_id":         in.OrderID,
			"gateway_order_id": in.GatewayOrderID,
		})
		return fail(c, err)
	}
	applog.Audit(c, "payment.verify", map[string]any{
		"order_id":   in.OrderID,
		"payment_id": in.PaymentID,
	})
	return c.JSON(fiber.Map{"success": true, "message": "Payment verified successfully"})
}
