package serviceimpl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
	"taskchat/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	storage  ports.StoragePort
	audit    services.AuditService
}

func NewTaskService(taskRepo repositories.TaskRepository, storage ports.StoragePort, audit services.AuditService) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		storage:  storage,
		audit:    audit,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusPending,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		return nil, apperrors.Store("failed to create task", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", userID)
	s.record(ctx, userID, "task.created", task.ID, task.Title)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Store("failed to load task", err)
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]*models.Task, int64, error) {
	tasks, err := s.taskRepo.List(ctx, userID, status, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to list tasks", err)
	}

	total, err := s.taskRepo.Count(ctx, userID, status)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count tasks", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to count tasks", err)
	}

	return tasks, total, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if req.Empty() {
		return nil, apperrors.Validation("nothing to update: provide a title, description or status")
	}

	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return nil, apperrors.Validation("status must be one of: pending, completed")
		}
		task.Status = *req.Status
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, apperrors.Store("failed to update task", err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)
	s.record(ctx, userID, "task.updated", taskID, task.Title)

	return task, nil
}

func (s *TaskServiceImpl) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	// Completing an already-completed task succeeds without a write.
	if task.IsCompleted() {
		return task, nil
	}

	task.Status = models.TaskStatusCompleted
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to complete task", "task_id", taskID, "error", err)
		return nil, apperrors.Store("failed to complete task", err)
	}

	logger.InfoContext(ctx, "Task completed", "task_id", taskID, "user_id", userID)
	s.record(ctx, userID, "task.completed", taskID, task.Title)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return apperrors.Store("failed to delete task", err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	s.record(ctx, userID, "task.deleted", taskID, task.Title)

	return nil
}

func (s *TaskServiceImpl) ExportTasks(ctx context.Context, userID uuid.UUID, username string) (string, int, error) {
	if s.storage == nil {
		return "", 0, apperrors.Validation("file storage is not configured")
	}

	tasks, err := s.taskRepo.List(ctx, userID, "", 0, 0)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load tasks for export", "user_id", userID, "error", err)
		return "", 0, apperrors.Store("failed to load tasks for export", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "title", "description", "status", "created_at", "updated_at"})
	for _, t := range tasks {
		_ = w.Write([]string{
			t.ID.String(),
			t.Title,
			t.Description,
			t.Status,
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", 0, apperrors.Store("failed to render CSV", err)
	}

	path := fmt.Sprintf("exports/%s-tasks-%s.csv", slug.Make(username), time.Now().Format("20060102-150405"))
	url, err := s.storage.UploadFile(&buf, path, "text/csv")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to upload export", "user_id", userID, "path", path, "error", err)
		return "", 0, apperrors.Store("failed to store export file", err)
	}

	logger.InfoContext(ctx, "Tasks exported", "user_id", userID, "count", len(tasks), "path", path)
	s.record(ctx, userID, "task.exported", uuid.Nil, fmt.Sprintf("%d tasks to %s", len(tasks), path))

	return url, len(tasks), nil
}

func (s *TaskServiceImpl) record(ctx context.Context, userID uuid.UUID, action string, resourceID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	id := ""
	if resourceID != uuid.Nil {
		id = resourceID.String()
	}
	s.audit.Record(ctx, &userID, action, "task", id, detail)
}
