package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "zarika/internal/log"
	"zarika/internal/repos"
	"zarika/internal/services"
	"zarika/internal/validate"
)

type AdminHandler struct {
	OrderSvc  *services.OrderService
	OrderRepo *repos.OrderRepo
	Users     *repos.UserRepo
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.OrderRepo.Stats()
	if err != nil {
		return fail(c, err)
	}
	recent, err := h.OrderRepo.ListLatest(10)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"totalOrders":    stats.TotalOrders,
		"totalRevenue":   stats.TotalRevenue,
		"totalProducts":  stats.TotalProducts,
		"totalCustomers": stats.TotalCustomers,
		"recentOrders":   recent,
	})
}

// GET /admin/customers
func (h *AdminHandler) Customers(c *fiber.Ctx) error {
	customers, err := h.Users.ListCustomers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"customers": customers})
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.OrderRepo.ListLatest(c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// PATCH /admin/orders/:id
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return badRequest(c, "status is required")
	}

	restocked, err := h.OrderSvc.SetStatus(id, in.Status, currentUser(c))
	if err != nil {
		applog.Error(c, "admin.order.status.fail", err, map[string]any{"order_id": id})
		return fail(c, err)
	}
	applog.Audit(c, "admin.order.status", map[string]any{
		"order_id":  id,
		"status":    in.Status,
		"restocked": restocked,
	})
	return c.JSON(fiber.Map{"ok": true, "status": in.Status, "restocked": restocked})
}
