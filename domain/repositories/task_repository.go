package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/models"
)

// TaskRepository is the task store. Every read and write is scoped to the
// owning user; a task belonging to someone else behaves as missing.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error)
	// List returns the user's tasks in creation order. An empty status means
	// no filter; limit <= 0 means no cap.
	List(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]*models.Task, error)
	Count(ctx context.Context, userID uuid.UUID, status string) (int64, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
