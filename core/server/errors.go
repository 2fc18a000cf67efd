package server

import (
	"errors"

	"bucket-manager/core/backend"
	"bucket-manager/core/random"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind onto an HTTP status. Unclassified errors are
// backend failures.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, backend.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, backend.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, backend.ErrCorrupt):
		return fiber.StatusInternalServerError
	case errors.Is(err, random.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

// Error writes err as a JSON body with its mapped status.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
