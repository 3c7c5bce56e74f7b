package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message        string     `json:"message" validate:"required,min=1,max=10000"`
	ConversationID *uuid.UUID `json:"conversationId" validate:"omitempty"`
}

type ChatResponse struct {
	Response        string    `json:"response"`
	ConversationID  uuid.UUID `json:"conversationId"`
	ActionPerformed string    `json:"actionPerformed,omitempty"`
}

type ConversationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
