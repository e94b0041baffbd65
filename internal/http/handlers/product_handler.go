package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "zarika/internal/log"
	"zarika/internal/services"
	"zarika/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.Catalog.ListProducts(services.ProductQuery{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		MinPrice:     c.Query("minPrice"),
		MaxPrice:     c.Query("maxPrice"),
		Sort:         c.Query("sort"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 12),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"products": page.Products,
		"pagination": fiber.Map{
			"page":       page.Page,
			"limit":      page.Limit,
			"total":      page.Total,
			"totalPages": page.TotalPages,
		},
	})
}

// GET /products/featured
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	prods, err := h.Catalog.FeaturedProducts(c.QueryInt("limit", 8))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": prods})
}

// GET /products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"product": p})
}

// POST /admin/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

// PATCH /admin/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"product": p})
}

// DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
