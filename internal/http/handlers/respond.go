package handlers

import (
	"database/sql"
	"errors"

	"modaville/internal/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors onto the API's status-code taxonomy:
// validation 400, auth 401, ownership/permission 403, missing 404 and
// everything else 500 with the underlying message in the body.
func fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	switch {
	case errors.Is(err, services.ErrBadCreds),
		errors.Is(err, services.ErrAccountLocked),
		errors.Is(err, services.ErrBadToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotYourOrder):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrBadTransition),
		errors.Is(err, services.ErrCancelTooLate),
		errors.Is(err, services.ErrInvoiceCancelled),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrBadRating),
		errors.Is(err, services.ErrBadRole),
		errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
