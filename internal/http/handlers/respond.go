package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"zarika/internal/apperr"
	applog "zarika/internal/log"
)

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errJSON(code apperr.Code, msg string) fiber.Map {
	return fiber.Map{"error": errBody{Code: string(code), Message: msg}}
}

// ErrorHandler is the app-wide fiber error handler: every error becomes a
// structured JSON body with a stable code, and nothing internal leaks.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae, ok := apperr.As(err); ok {
		return c.Status(ae.HTTPStatus()).JSON(errJSON(ae.Code, ae.Message))
	}
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		return c.Status(fe.Code).JSON(errJSON(apperr.CodeValidation, fe.Message))
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": errBody{Code: "INTERNAL", Message: "Something went wrong. Please try again."},
	})
}

// fail routes a service error through ErrorHandler so handlers can simply
// `return fail(c, err)`.
func fail(c *fiber.Ctx, err error) error {
	return ErrorHandler(c, err)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errJSON(apperr.CodeValidation, msg))
}
