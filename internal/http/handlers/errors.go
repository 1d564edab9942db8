package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/cart"
	"shopdesk/internal/checkout"
	applog "shopdesk/internal/log"
	"shopdesk/internal/repos"
	"shopdesk/internal/services"
)

const friendlyError = "Something went wrong. Please try again."

// ErrorHandler is the app-wide fiber error handler. Client errors raised with
// fiber.NewError keep their message; anything else is logged and replaced by
// a generic one.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendlyError})
}

// fail maps domain errors onto HTTP responses. Unknown errors go to
// ErrorHandler.
func fail(c *fiber.Ctx, err error) error {
	var rej *cart.Rejection
	var se *repos.StockError
	switch {
	case errors.As(err, &rej):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(rej)
	case errors.As(err, &se):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      se.Error(),
			"product_id": se.ProductID,
			"available":  se.Available,
		})
	case errors.Is(err, checkout.ErrSubmissionInFlight),
		errors.Is(err, cart.ErrProductUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, checkout.ErrCustomerNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": rootMessage(err)})
	case errors.Is(err, services.ErrBadRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return err
}

func rootMessage(err error) string {
	for _, target := range []error{checkout.ErrProductNotFound, checkout.ErrCustomerNotFound, cart.ErrLineNotFound} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "not found"
}
