package websocket

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskchat/domain/dto"
	"taskchat/domain/services"
	"taskchat/pkg/logger"
	"taskchat/pkg/utils"
)

// ChatHandler serves the chat dispatcher over a websocket: one ChatRequest
// frame in, one ChatResponse frame out. The connection carries no state the
// store doesn't have; dropping it loses nothing.
type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

type errorFrame struct {
	Error string `json:"error"`
}

func (h *ChatHandler) Handle(c *websocket.Conn) {
	userCtx, ok := c.Locals("user").(*utils.UserContext)
	if !ok || userCtx == nil {
		_ = c.WriteJSON(errorFrame{Error: "unauthorized"})
		_ = c.Close()
		return
	}

	logger.Info("Chat websocket connected", "user_id", userCtx.ID)
	defer logger.Info("Chat websocket disconnected", "user_id", userCtx.ID)

	for {
		_, payload, err := c.ReadMessage()
		if err != nil {
			return
		}

		var req dto.ChatRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			_ = c.WriteJSON(errorFrame{Error: "invalid message frame"})
			continue
		}
		if err := utils.ValidateStruct(&req); err != nil {
			_ = c.WriteJSON(errorFrame{Error: "message must be 1 to 10000 characters"})
			continue
		}

		result, err := h.chatService.SubmitMessage(context.Background(), userCtx.ID, req.ConversationID, req.Message)
		if err != nil {
			logger.Error("Chat websocket turn failed", "user_id", userCtx.ID, "error", err)
			_ = c.WriteJSON(errorFrame{Error: "something went wrong, please try again"})
			continue
		}

		if err := c.WriteJSON(dto.ChatResponse{
			Response:        result.Response,
			ConversationID:  result.ConversationID,
			ActionPerformed: result.ActionPerformed,
		}); err != nil {
			return
		}
	}
}
