package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "zarika/internal/log"
	"zarika/internal/services"
	"zarika/internal/validate"
)

type HeroHandler struct {
	Catalog *services.CatalogService
}

// GET /hero
func (h *HeroHandler) List(c *fiber.Ctx) error {
	slides, err := h.Catalog.HeroSlides()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"slides": slides})
}

// POST /admin/hero
func (h *HeroHandler) Create(c *fiber.Ctx) error {
	var in services.HeroInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	sl, err := h.Catalog.CreateHeroSlide(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.hero.create", map[string]any{"slide_id": sl.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slide": sl})
}

// PATCH /admin/hero/:id
func (h *HeroHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid slide id")
	}
	var in services.HeroInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	sl, err := h.Catalog.UpdateHeroSlide(id, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.hero.update", map[string]any{"slide_id": id})
	return c.JSON(fiber.Map{"slide": sl})
}

// DELETE /admin/hero/:id
func (h *HeroHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid slide id")
	}
	if err := h.Catalog.DeleteHeroSlide(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.hero.delete", map[string]any{"slide_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
