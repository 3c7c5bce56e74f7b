package services

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/models"
)

// ChatResult is what the dispatcher hands back per inbound message.
type ChatResult struct {
	Response        string
	ConversationID  uuid.UUID
	ActionPerformed string // tool name, or "clarification"
}

// ChatService is the conversation dispatcher: the single entry point per
// inbound chat message. It is stateless across calls; all durable state
// lives in the conversation and task stores.
type ChatService interface {
	SubmitMessage(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, text string) (*ChatResult, error)
	ListConversations(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Conversation, int64, error)
	GetMessages(ctx context.Context, userID, conversationID uuid.UUID, offset, limit int) ([]*models.Message, error)
}
