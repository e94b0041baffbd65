package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "zarika/internal/log"
	"zarika/internal/services"
	"zarika/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)

	var in services.PlaceOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	orderID, serverTotal, clientTotal, err := h.Orders.Place(u.ID, in)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     orderID,
		"server_total": serverTotal.String(),
		"client_total": clientTotal.String(),
		"mismatch":     !serverTotal.Equal(clientTotal),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"orderId": orderID,
		"message": "Order placed successfully",
	})
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListForUser(u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	d, err := h.Orders.Get(id, currentUser(c))
	if err != nil {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": id, "error": err.Error()})
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"order": d})
}
