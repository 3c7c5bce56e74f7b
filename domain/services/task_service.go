package services

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]*models.Task, int64, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	// ExportTasks renders the user's tasks to CSV, stores the file through
	// the storage port and returns its URL plus the exported row count.
	ExportTasks(ctx context.Context, userID uuid.UUID, username string) (string, int, error)
}
