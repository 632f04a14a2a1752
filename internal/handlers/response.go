package handlers

import (
	"github.com/gofiber/fiber/v3"

	"controlcompass/internal/validation"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonValidationError returns a 400 with the failing fields and the
// earliest form step that failed.
func jsonValidationError(c fiber.Ctx, errs *validation.FormErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status": "error",
		"error":  "validation failed",
		"fields": errs.Fields,
		"step":   errs.Step,
	})
}
