package handlers

import (
	"github.com/gofiber/fiber/v2"

	"zarika/internal/apperr"
	"zarika/internal/domain"
	applog "zarika/internal/log"
	"zarika/internal/services"
)

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireUser rejects callers without a bound session.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(errJSON(apperr.CodeUnauthorized, "login required"))
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errJSON(apperr.CodeUnauthorized, "login required"))
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin gates the back-office. Unauthenticated and non-admin callers
// get the exact same response so the gate leaks nothing about roles or
// resource existence.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	denied := func(c *fiber.Ctx) error {
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusForbidden).JSON(errJSON(apperr.CodeForbidden, "access denied"))
	}
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return denied(c)
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || !u.IsAdmin() {
			return denied(c)
		}
		c.Locals("user", u)
		return c.Next()
	}
}
