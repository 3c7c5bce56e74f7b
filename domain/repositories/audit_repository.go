package repositories

import (
	"context"
	"time"

	"taskchat/domain/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, error)
	// DeleteOlderThan removes entries created before cutoff and reports how
	// many rows were pruned.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
