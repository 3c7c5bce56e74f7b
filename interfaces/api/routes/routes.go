package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
	"taskchat/interfaces/api/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, services *handlers.Services) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")

	auth := middleware.Protected(services.JWTSecret, services.TokenRevoker)

	SetupAuthRoutes(api, h, auth)
	SetupTaskRoutes(api, h, auth)
	SetupStudentRoutes(api, h, auth)
	SetupChatRoutes(api, h, auth)
	SetupAuditRoutes(api, h, auth)
	SetupWebSocketRoutes(app, services, auth)
}
