package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one mutating operation for diagnostics. Rows older than
// the configured retention are pruned by a scheduled job.
type AuditLog struct {
	ID           uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID       *uuid.UUID `gorm:"index"`
	Action       string     `gorm:"size:64;not null;index"`
	ResourceType string     `gorm:"size:32;not null"`
	ResourceID   string     `gorm:"size:64"`
	Detail       string     `gorm:"size:1000"`
	CreatedAt    time.Time  `gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
