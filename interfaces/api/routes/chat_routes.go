package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupChatRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	chat := api.Group("/chat")
	chat.Use(auth)
	chat.Post("/", h.ChatHandler.SendMessage)
	chat.Get("/conversations", h.ChatHandler.ListConversations)
	chat.Get("/conversations/:id/messages", h.ChatHandler.GetMessages)
}
