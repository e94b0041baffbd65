package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "zarika/internal/log"
	"zarika/internal/services"
	"zarika/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// POST /admin/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category_id": cat.ID, "slug": cat.Slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": cat})
}

// PATCH /admin/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid category id")
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	cat, err := h.Catalog.UpdateCategory(id, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.update", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"category": cat})
}

// DELETE /admin/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid category id")
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
