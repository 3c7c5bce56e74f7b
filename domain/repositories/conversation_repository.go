package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/models"
)

// ConversationRepository is the conversation store; it owns both
// conversations and their append-only message logs.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Conversation, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Conversation, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	// Touch refreshes the conversation's updated_at after a new turn.
	Touch(ctx context.Context, id uuid.UUID) error

	AppendMessage(ctx context.Context, message *models.Message) error
	// RecentMessages returns the newest `limit` messages in conversation
	// order (oldest of the window first).
	RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error)
	Messages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*models.Message, error)
}
