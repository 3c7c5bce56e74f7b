package services

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/models"
)

// AuditService records mutating operations. Record never fails the calling
// operation: persistence problems are logged and swallowed.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action, resourceType, resourceID, detail string)
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, error)
	// Prune removes entries past the retention window; run by the scheduler.
	Prune(ctx context.Context) (int64, error)
}
