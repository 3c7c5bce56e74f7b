package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Student, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Student, error)
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
