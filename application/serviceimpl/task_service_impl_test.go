package serviceimpl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/pkg/apperrors"
)

func TestCompleteTaskIsIdempotent(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil, nil)
	userID := uuid.New()

	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	first, err := svc.CompleteTask(context.Background(), userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, first.Status)
	completedAt := first.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	second, err := svc.CompleteTask(context.Background(), userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, second.Status)
	assert.Equal(t, completedAt, second.UpdatedAt)
}

func TestUpdateTaskRequiresFields(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil, nil)
	userID := uuid.New()

	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(context.Background(), userID, task.ID, &dto.UpdateTaskRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateTaskAdvancesUpdatedAt(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo, nil, nil)
	userID := uuid.New()

	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)
	before := task.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	title := "buy oat milk"
	updated, err := svc.UpdateTask(context.Background(), userID, task.ID, &dto.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(before))

	tasks, _, err := svc.ListTasks(context.Background(), userID, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy oat milk", tasks[0].Title)
	assert.True(t, tasks[0].UpdatedAt.After(before))
}

func TestGetTaskWrapsStoreFailure(t *testing.T) {
	repo := &fakeTaskRepo{err: assert.AnError}
	svc := NewTaskService(repo, nil, nil)

	_, err := svc.GetTask(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsStore(err))
}

func TestExportTasks(t *testing.T) {
	repo := &fakeTaskRepo{}
	storage := newFakeStorage()
	svc := NewTaskService(repo, storage, nil)
	userID := uuid.New()

	_, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "buy milk", Description: "2 litres"})
	require.NoError(t, err)
	_, err = svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "walk the dog"})
	require.NoError(t, err)

	url, count, err := svc.ExportTasks(context.Background(), userID, "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, strings.HasPrefix(url, "/files/exports/ada-lovelace-tasks-"))

	require.Len(t, storage.uploads, 1)
	for _, data := range storage.uploads {
		content := string(data)
		lines := strings.Split(strings.TrimSpace(content), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "id,title,description,status,created_at,updated_at", lines[0])
		assert.Contains(t, content, "buy milk")
		assert.Contains(t, content, "walk the dog")
	}
}

func TestExportTasksWithoutStorage(t *testing.T) {
	svc := NewTaskService(&fakeTaskRepo{}, nil, nil)

	_, _, err := svc.ExportTasks(context.Background(), uuid.New(), "ada")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
