package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
)

// Tool names form the fixed catalogue; nothing else is invocable.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
	ToolUpdateTask   = "update_task"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
)

// ToolResult is a tool's success payload: a human-readable confirmation plus
// structured data for callers that want it.
type ToolResult struct {
	Message string
	Data    any
}

// ListData is the structured payload of list_tasks.
type ListData struct {
	Tasks []*models.Task
	Count int
}

type toolFunc func(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error)

type toolEntry struct {
	schema ports.ToolSchema
	run    toolFunc
}

// Registry holds the fixed set of task tools. Every call is one owner-scoped
// read-modify-write against the task store; arguments are validated against
// the tool's schema before the store is touched.
type Registry struct {
	tasks services.TaskService
	tools map[string]toolEntry
	order []string
}

func NewRegistry(tasks services.TaskService) *Registry {
	r := &Registry{
		tasks: tasks,
		tools: make(map[string]toolEntry),
	}

	r.register(ports.ToolSchema{
		Name:        ToolAddTask,
		Description: "Create a new task on the user's list",
		Parameters:  `{"type":"object","properties":{"title":{"type":"string","minLength":1,"maxLength":255},"description":{"type":"string","maxLength":1000}},"required":["title"]}`,
	}, r.addTask)

	r.register(ports.ToolSchema{
		Name:        ToolListTasks,
		Description: "List the user's tasks, optionally filtered by status",
		Parameters:  `{"type":"object","properties":{"status":{"type":"string","enum":["pending","completed"]}}}`,
	}, r.listTasks)

	r.register(ports.ToolSchema{
		Name:        ToolCompleteTask,
		Description: "Mark a task as completed",
		Parameters:  `{"type":"object","properties":{"task_id":{"type":"string","format":"uuid"}},"required":["task_id"]}`,
	}, r.completeTask)

	r.register(ports.ToolSchema{
		Name:        ToolDeleteTask,
		Description: "Delete a task permanently",
		Parameters:  `{"type":"object","properties":{"task_id":{"type":"string","format":"uuid"}},"required":["task_id"]}`,
	}, r.deleteTask)

	r.register(ports.ToolSchema{
		Name:        ToolUpdateTask,
		Description: "Change a task's title, description or status",
		Parameters:  `{"type":"object","properties":{"task_id":{"type":"string","format":"uuid"},"title":{"type":"string","maxLength":255},"description":{"type":"string","maxLength":1000},"status":{"type":"string","enum":["pending","completed"]}},"required":["task_id"]}`,
	}, r.updateTask)

	return r
}

func (r *Registry) register(schema ports.ToolSchema, run toolFunc) {
	r.tools[schema.Name] = toolEntry{schema: schema, run: run}
	r.order = append(r.order, schema.Name)
}

// Schemas returns the tool catalogue in registration order, for the
// classifier's set of allowed outputs.
func (r *Registry) Schemas() []ports.ToolSchema {
	out := make([]ports.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].schema)
	}
	return out
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Invoke runs one tool for the given owner.
func (r *Registry) Invoke(ctx context.Context, userID uuid.UUID, name string, args map[string]any) (*ToolResult, error) {
	entry, ok := r.tools[name]
	if !ok {
		return nil, apperrors.Validation("unknown tool %q", name)
	}
	return entry.run(ctx, userID, args)
}

// ========== Tool implementations ==========

func (r *Registry) addTask(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error) {
	title := strings.TrimSpace(stringArg(args, "title"))
	description := strings.TrimSpace(stringArg(args, "description"))

	if title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if len(title) > maxTitleLen {
		return nil, apperrors.Validation("title must be at most %d characters", maxTitleLen)
	}
	if len(description) > maxDescriptionLen {
		return nil, apperrors.Validation("description must be at most %d characters", maxDescriptionLen)
	}

	task, err := r.tasks.CreateTask(ctx, userID, &dto.CreateTaskRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	return &ToolResult{
		Message: fmt.Sprintf("Added '%s' to your list.", task.Title),
		Data:    task,
	}, nil
}

func (r *Registry) listTasks(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error) {
	status := strings.ToLower(strings.TrimSpace(stringArg(args, "status")))
	if status != "" && !models.ValidTaskStatus(status) {
		return nil, apperrors.Validation("status must be one of: pending, completed")
	}

	tasks, _, err := r.tasks.ListTasks(ctx, userID, status, 0, 0)
	if err != nil {
		return nil, err
	}

	return &ToolResult{
		Message: formatTaskList(tasks, status),
		Data:    &ListData{Tasks: tasks, Count: len(tasks)},
	}, nil
}

func (r *Registry) completeTask(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error) {
	taskID, err := taskIDArg(args)
	if err != nil {
		return nil, err
	}

	task, err := r.tasks.CompleteTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	return &ToolResult{
		Message: fmt.Sprintf("Marked '%s' as completed.", task.Title),
		Data:    task,
	}, nil
}

func (r *Registry) deleteTask(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error) {
	taskID, err := taskIDArg(args)
	if err != nil {
		return nil, err
	}

	// Read first so the confirmation can name the task; removal is permanent.
	task, err := r.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := r.tasks.DeleteTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	return &ToolResult{
		Message: fmt.Sprintf("Deleted '%s' from your list.", task.Title),
		Data:    task,
	}, nil
}

func (r *Registry) updateTask(ctx context.Context, userID uuid.UUID, args map[string]any) (*ToolResult, error) {
	taskID, err := taskIDArg(args)
	if err != nil {
		return nil, err
	}

	req := &dto.UpdateTaskRequest{}
	if v, ok := args["title"]; ok {
		title := strings.TrimSpace(toString(v))
		if title == "" || len(title) > maxTitleLen {
			return nil, apperrors.Validation("title must be 1 to %d characters", maxTitleLen)
		}
		req.Title = &title
	}
	if v, ok := args["description"]; ok {
		description := toString(v)
		if len(description) > maxDescriptionLen {
			return nil, apperrors.Validation("description must be at most %d characters", maxDescriptionLen)
		}
		req.Description = &description
	}
	if v, ok := args["status"]; ok {
		status := strings.ToLower(strings.TrimSpace(toString(v)))
		if !models.ValidTaskStatus(status) {
			return nil, apperrors.Validation("status must be one of: pending, completed")
		}
		req.Status = &status
	}

	if req.Empty() {
		return nil, apperrors.Validation("nothing to update: provide a title, description or status")
	}

	task, err := r.tasks.UpdateTask(ctx, userID, taskID, req)
	if err != nil {
		return nil, err
	}

	return &ToolResult{
		Message: fmt.Sprintf("Updated '%s'.", task.Title),
		Data:    task,
	}, nil
}

// ========== Argument helpers ==========

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	return toString(args[key])
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func taskIDArg(args map[string]any) (uuid.UUID, error) {
	raw := strings.TrimSpace(stringArg(args, "task_id"))
	if raw == "" {
		return uuid.Nil, apperrors.Validation("task_id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("task_id must be a valid id")
	}
	return id, nil
}

func formatTaskList(tasks []*models.Task, status string) string {
	if len(tasks) == 0 {
		if status != "" {
			return fmt.Sprintf("You have no %s tasks.", status)
		}
		return "Your list is empty. Nothing to do!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d task", len(tasks))
	if len(tasks) != 1 {
		b.WriteString("s")
	}
	if status != "" {
		fmt.Fprintf(&b, " (%s)", status)
	}
	b.WriteString(":\n")

	for i, t := range tasks {
		marker := "[ ]"
		if t.IsCompleted() {
			marker = "[x]"
		}
		fmt.Fprintf(&b, "%d. %s %s", i+1, marker, t.Title)
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
