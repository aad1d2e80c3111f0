package httpapi

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/country-weather-api/internal/country"
)

// ErrorHandler is the centralized Fiber error handler. It maps domain errors
// onto HTTP statuses; upstream failures keep the upstream's status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func statusFor(err error) (int, string) {
	var (
		fiberErr *fiber.Error
		argErr   *country.InvalidArgumentError
		upErr    *country.UpstreamError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &argErr):
		return fiber.StatusBadRequest, argErr.Message
	case errors.As(err, &upErr):
		if upErr.Status < 100 || upErr.Status > 599 {
			return fiber.StatusBadGateway, upErr.Error()
		}
		return upErr.Status, upErr.Error()
	case errors.Is(err, country.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, country.ErrMalformedData):
		return fiber.StatusBadGateway, err.Error()
	default:
		return fiber.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
