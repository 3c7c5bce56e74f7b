package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/services"
	"taskchat/pkg/logger"
	"taskchat/pkg/utils"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage runs one conversational turn.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	result, err := h.chatService.SubmitMessage(ctx, user.ID, req.ConversationID, req.Message)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ChatResponse{
		Response:        result.Response,
		ConversationID:  result.ConversationID,
		ActionPerformed: result.ActionPerformed,
	})
}

func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	conversations, total, err := h.chatService.ListConversations(ctx, user.ID, (page-1)*limit, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.PaginatedSuccessResponse(c, dto.ConversationsToConversationResponses(conversations), total, page, limit)
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid conversation ID")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	messages, err := h.chatService.GetMessages(ctx, user.ID, conversationID, (page-1)*limit, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.MessagesToMessageResponses(messages))
}
