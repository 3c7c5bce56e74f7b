package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskchat/domain/models"
	"taskchat/domain/repositories"
)

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) repositories.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []*models.AuditLog
	err := query.Find(&entries).Error
	return entries, err
}

func (r *AuditRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
