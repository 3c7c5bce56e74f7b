package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskchat/domain/models"
	"taskchat/pkg/apperrors"
)

func TestRegistrySchemas(t *testing.T) {
	registry := NewRegistry(newFakeTaskService())

	schemas := registry.Schemas()
	require.Len(t, schemas, 5)

	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.Name
		assert.NotEmpty(t, s.Description)
		assert.NotEmpty(t, s.Parameters)
	}
	assert.Equal(t, []string{ToolAddTask, ToolListTasks, ToolCompleteTask, ToolDeleteTask, ToolUpdateTask}, names)

	assert.True(t, registry.Has(ToolAddTask))
	assert.False(t, registry.Has("drop_database"))
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	registry := NewRegistry(newFakeTaskService())

	_, err := registry.Invoke(context.Background(), uuid.New(), "drop_database", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddTask(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()

	result, err := registry.Invoke(context.Background(), userID, ToolAddTask, map[string]any{
		"title": "  buy milk  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Added 'buy milk' to your list.", result.Message)

	task, ok := result.Data.(*models.Task)
	require.True(t, ok)
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, userID, task.UserID)
}

func TestAddTaskValidation(t *testing.T) {
	registry := NewRegistry(newFakeTaskService())
	userID := uuid.New()

	cases := []struct {
		name string
		args map[string]any
	}{
		{"missing title", map[string]any{}},
		{"blank title", map[string]any{"title": "   "}},
		{"title too long", map[string]any{"title": strings.Repeat("x", 256)}},
		{"description too long", map[string]any{"title": "ok", "description": strings.Repeat("x", 1001)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := registry.Invoke(context.Background(), userID, ToolAddTask, tc.args)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestListTasks(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk", "walk the dog")

	_, err := svc.CompleteTask(context.Background(), userID, seeded[1].ID)
	require.NoError(t, err)

	result, err := registry.Invoke(context.Background(), userID, ToolListTasks, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "1. [ ] buy milk")
	assert.Contains(t, result.Message, "2. [x] walk the dog")

	data, ok := result.Data.(*ListData)
	require.True(t, ok)
	assert.Equal(t, 2, data.Count)
}

func TestListTasksStatusFilter(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk", "walk the dog")

	_, err := svc.CompleteTask(context.Background(), userID, seeded[0].ID)
	require.NoError(t, err)

	result, err := registry.Invoke(context.Background(), userID, ToolListTasks, map[string]any{"status": "completed"})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "buy milk")
	assert.NotContains(t, result.Message, "walk the dog")

	_, err = registry.Invoke(context.Background(), userID, ToolListTasks, map[string]any{"status": "urgent"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestListTasksEmpty(t *testing.T) {
	registry := NewRegistry(newFakeTaskService())

	result, err := registry.Invoke(context.Background(), uuid.New(), ToolListTasks, nil)
	require.NoError(t, err)
	assert.Equal(t, "Your list is empty. Nothing to do!", result.Message)

	result, err = registry.Invoke(context.Background(), uuid.New(), ToolListTasks, map[string]any{"status": "pending"})
	require.NoError(t, err)
	assert.Equal(t, "You have no pending tasks.", result.Message)
}

func TestCompleteTask(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk")

	result, err := registry.Invoke(context.Background(), userID, ToolCompleteTask, map[string]any{
		"task_id": seeded[0].ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Marked 'buy milk' as completed.", result.Message)
	assert.Equal(t, models.TaskStatusCompleted, seeded[0].Status)

	// Completing again succeeds and reports the same final state.
	result, err = registry.Invoke(context.Background(), userID, ToolCompleteTask, map[string]any{
		"task_id": seeded[0].ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Marked 'buy milk' as completed.", result.Message)
}

func TestCompleteTaskValidation(t *testing.T) {
	registry := NewRegistry(newFakeTaskService())
	userID := uuid.New()

	_, err := registry.Invoke(context.Background(), userID, ToolCompleteTask, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = registry.Invoke(context.Background(), userID, ToolCompleteTask, map[string]any{"task_id": "not-a-uuid"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = registry.Invoke(context.Background(), userID, ToolCompleteTask, map[string]any{"task_id": uuid.NewString()})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteTask(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk")

	result, err := registry.Invoke(context.Background(), userID, ToolDeleteTask, map[string]any{
		"task_id": seeded[0].ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Deleted 'buy milk' from your list.", result.Message)
	assert.Empty(t, svc.tasks)

	_, err = registry.Invoke(context.Background(), userID, ToolDeleteTask, map[string]any{
		"task_id": seeded[0].ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToolsAreOwnerScoped(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	owner := uuid.New()
	intruder := uuid.New()
	seeded := svc.seed(owner, "buy milk")

	for _, tool := range []string{ToolCompleteTask, ToolDeleteTask} {
		_, err := registry.Invoke(context.Background(), intruder, tool, map[string]any{
			"task_id": seeded[0].ID.String(),
		})
		require.Error(t, err, tool)
		assert.True(t, apperrors.IsNotFound(err), tool)
	}

	result, err := registry.Invoke(context.Background(), intruder, ToolListTasks, nil)
	require.NoError(t, err)
	assert.Equal(t, "Your list is empty. Nothing to do!", result.Message)
}

func TestUpdateTask(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk")

	result, err := registry.Invoke(context.Background(), userID, ToolUpdateTask, map[string]any{
		"task_id": seeded[0].ID.String(),
		"title":   "buy oat milk",
		"status":  "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated 'buy oat milk'.", result.Message)
	assert.Equal(t, "buy oat milk", seeded[0].Title)
	assert.Equal(t, models.TaskStatusCompleted, seeded[0].Status)
}

func TestUpdateTaskValidation(t *testing.T) {
	svc := newFakeTaskService()
	registry := NewRegistry(svc)
	userID := uuid.New()
	seeded := svc.seed(userID, "buy milk")

	cases := []struct {
		name string
		args map[string]any
	}{
		{"no fields", map[string]any{"task_id": seeded[0].ID.String()}},
		{"blank title", map[string]any{"task_id": seeded[0].ID.String(), "title": "  "}},
		{"bad status", map[string]any{"task_id": seeded[0].ID.String(), "status": "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := registry.Invoke(context.Background(), userID, ToolUpdateTask, tc.args)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}

	assert.Equal(t, "buy milk", seeded[0].Title)
}
