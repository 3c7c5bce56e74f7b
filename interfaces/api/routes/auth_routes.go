package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.AuthHandler.Register)
	authGroup.Post("/login", h.AuthHandler.Login)
	authGroup.Post("/logout", auth, h.AuthHandler.Logout)
	authGroup.Get("/profile", auth, h.AuthHandler.Profile)
}
