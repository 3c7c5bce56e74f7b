package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskchat/interfaces/api/handlers"
	websocketHandler "taskchat/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, services *handlers.Services, auth fiber.Handler) {
	wsHandler := websocketHandler.NewChatHandler(services.ChatService)

	app.Use("/ws/chat", auth, wsHandler.Upgrade)
	app.Get("/ws/chat", websocket.New(wsHandler.Handle))
}
