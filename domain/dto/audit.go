package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Action       string     `json:"action"`
	ResourceType string     `json:"resourceType"`
	ResourceID   string     `json:"resourceId,omitempty"`
	Detail       string     `json:"detail,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
