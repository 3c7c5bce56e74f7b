package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskchat/domain/models"
	"taskchat/domain/repositories"
	"taskchat/pkg/apperrors"
)

type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) repositories.ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *ConversationRepositoryImpl) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Conversation, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var conversations []*models.Conversation
	err := query.Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Conversation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ConversationRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *ConversationRepositoryImpl) AppendMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// RecentMessages selects the newest window, then flips it back to
// conversation order for the caller.
func (r *ConversationRepositoryImpl) RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	query := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []*models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ConversationRepositoryImpl) Messages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*models.Message, error) {
	query := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Order("created_at ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []*models.Message
	err := query.Find(&messages).Error
	return messages, err
}
