package serviceimpl

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
	"taskchat/pkg/logger"
)

type AuditServiceImpl struct {
	auditRepo repositories.AuditRepository
	publisher ports.EventPublisher // optional fan-out, nil when messaging is disabled
	subject   string
	retention time.Duration
}

func NewAuditService(auditRepo repositories.AuditRepository, publisher ports.EventPublisher, subject string, retentionDays int) services.AuditService {
	return &AuditServiceImpl{
		auditRepo: auditRepo,
		publisher: publisher,
		subject:   subject,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func (s *AuditServiceImpl) Record(ctx context.Context, userID *uuid.UUID, action, resourceType, resourceID, detail string) {
	entry := &models.AuditLog{
		ID:           uuid.New(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
		CreatedAt:    time.Now(),
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to write audit entry", "action", action, "error", err)
		return
	}

	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to encode audit event", "action", action, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, s.subject, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish audit event", "action", action, "error", err)
	}
}

func (s *AuditServiceImpl) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, error) {
	entries, err := s.auditRepo.List(ctx, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list audit entries", "error", err)
		return nil, apperrors.Store("failed to list audit entries", err)
	}
	return entries, nil
}

func (s *AuditServiceImpl) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.retention)

	removed, err := s.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to prune audit entries", "error", err)
		return 0, apperrors.Store("failed to prune audit entries", err)
	}

	if removed > 0 {
		logger.Info("Pruned audit entries", "removed", removed, "cutoff", cutoff)
	}
	return removed, nil
}
