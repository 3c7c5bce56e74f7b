package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Conversation is created lazily on the first message from a user when no
// conversation id is supplied. It is never deleted by the system.
type Conversation struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title     string    `gorm:"size:255"`
	UserID    uuid.UUID `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message is append-only: never edited or reordered after insertion.
// CreatedAt plus the insertion order of IDs gives conversation order.
type Message struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ConversationID uuid.UUID `gorm:"not null;index"`
	Role           string    `gorm:"size:16;not null"`
	Content        string    `gorm:"size:10000;not null"`
	CreatedAt      time.Time
}

func (Message) TableName() string {
	return "messages"
}
