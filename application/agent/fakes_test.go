package agent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/pkg/apperrors"
)

// fakeTaskService is an in-memory TaskService keeping tasks in creation
// order, the same contract the persistent implementation honors.
type fakeTaskService struct {
	tasks []*models.Task
	err   error // when set, every call fails with it
}

func newFakeTaskService() *fakeTaskService {
	return &fakeTaskService{}
}

func (f *fakeTaskService) seed(userID uuid.UUID, titles ...string) []*models.Task {
	var out []*models.Task
	for _, title := range titles {
		task, _ := f.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: title})
		out = append(out, task)
	}
	return out
}

func (f *fakeTaskService) CreateTask(_ context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusPending,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeTaskService) GetTask(_ context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.tasks {
		if t.ID == taskID && t.UserID == userID {
			return t, nil
		}
	}
	return nil, apperrors.NotFound("task not found")
}

func (f *fakeTaskService) ListTasks(_ context.Context, userID uuid.UUID, status string, offset, limit int) ([]*models.Task, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	total := int64(len(out))
	if offset > 0 && offset < len(out) {
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := f.GetTask(ctx, userID, taskID)
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
		task.Status = *req.Status
	}
	task.UpdatedAt = time.Now()
	return task, nil
}

func (f *fakeTaskService) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := f.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = models.TaskStatusCompleted
	task.UpdatedAt = time.Now()
	return task, nil
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := f.GetTask(ctx, userID, taskID); err != nil {
		return err
	}
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTaskService) ExportTasks(_ context.Context, userID uuid.UUID, _ string) (string, int, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	count := 0
	for _, t := range f.tasks {
		if t.UserID == userID {
			count++
		}
	}
	return "/exports/tasks.csv", count, nil
}

// fakeClassifier returns a canned classification or error.
type fakeClassifier struct {
	result *ports.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string, _ []ports.ClassifierMessage, _ []ports.ToolSchema) (*ports.Classification, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
