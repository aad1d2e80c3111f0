package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/country-weather-api/internal/country"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *country.Service) {
	app.Get("/countries", func(c *fiber.Ctx) error {
		countries, err := service.Countries(c.UserContext(), c.Query("continent"))
		if err != nil {
			return err
		}
		return c.JSON(countries)
	})

	app.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(service.Favorites())
	})

	byCountry := app.Group("/country/:country")

	byCountry.Get("/details", func(c *fiber.Ctx) error {
		detail, err := service.Details(c.UserContext(), c.Params("country"))
		if err != nil {
			return err
		}
		return c.JSON(detail)
	})

	byCountry.Get("/temperature", func(c *fiber.Ctx) error {
		temp, err := service.Temperature(c.UserContext(), c.Params("country"))
		if err != nil {
			return err
		}
		return c.JSON(temp)
	})

	byCountry.Post("/favorite", func(c *fiber.Ctx) error {
		res, err := service.Favorite(c.UserContext(), c.Params("country"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	byCountry.Delete("/unfavorite", func(c *fiber.Ctx) error {
		res, err := service.Unfavorite(c.UserContext(), c.Params("country"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	byCountry.Get("/graph", func(c *fiber.Ctx) error {
		img, err := service.TemperatureGraph(c.UserContext(), c.Params("country"), c.Query("n"))
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	})
}
