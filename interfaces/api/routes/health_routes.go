package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
	app.Get("/health/ready", h.HealthHandler.Ready)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Taskchat API",
			"docs":    "/api/v1",
			"health":  "/health",
		})
	})
}
