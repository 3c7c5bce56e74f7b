package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupAuditRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	audit := api.Group("/audit")
	audit.Use(auth)
	audit.Get("/", h.AuditHandler.ListEntries)
}
