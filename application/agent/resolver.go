package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/services"
	"taskchat/pkg/logger"
)

// Resolution is the resolver's decision for one utterance: either a tool
// invocation or a clarification to send back as-is. Never both.
type Resolution struct {
	Tool          string
	Args          map[string]any
	Clarification string
}

// Resolver maps free text to a tool invocation. Rule-first: a deterministic
// keyword lexicon handles the common case; the external classifier is only
// consulted when the lexicon finds nothing or finds conflicting signals.
// Ambiguous or unparseable input always degrades to a clarification, never
// to a hard error — destructive tools exist, so the resolver never guesses.
type Resolver struct {
	registry        *Registry
	tasks           services.TaskService
	classifier      ports.IntentClassifier // nil = keyword-only resolution
	classifyTimeout time.Duration
}

func NewResolver(registry *Registry, tasks services.TaskService, classifier ports.IntentClassifier, classifyTimeout time.Duration) *Resolver {
	if classifyTimeout <= 0 {
		classifyTimeout = 15 * time.Second
	}
	return &Resolver{
		registry:        registry,
		tasks:           tasks,
		classifier:      classifier,
		classifyTimeout: classifyTimeout,
	}
}

// lexicon maps trigger words to tools. A word matches only as a whole token,
// so "completed" filters a list without signalling complete_task.
var lexicon = map[string]string{
	"add": ToolAddTask, "create": ToolAddTask, "remember": ToolAddTask, "new": ToolAddTask,
	"show": ToolListTasks, "list": ToolListTasks, "see": ToolListTasks, "view": ToolListTasks,
	"done": ToolCompleteTask, "finished": ToolCompleteTask, "complete": ToolCompleteTask, "finish": ToolCompleteTask,
	"delete": ToolDeleteTask, "remove": ToolDeleteTask, "cancel": ToolDeleteTask,
	"change": ToolUpdateTask, "update": ToolUpdateTask, "rename": ToolUpdateTask, "modify": ToolUpdateTask,
}

const genericClarification = "I didn't quite get that. You can ask me to add, list, complete, update or delete tasks — for example 'add a task to buy milk' or 'show my tasks'."

// Resolve decides what to do with one utterance.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, text string, recent []ports.ClassifierMessage) (*Resolution, error) {
	tool := keywordIntent(text)
	if tool != "" {
		return r.resolveDeterministic(ctx, userID, tool, text)
	}

	if r.classifier == nil {
		return clarify(genericClarification), nil
	}

	cctx, cancel := context.WithTimeout(ctx, r.classifyTimeout)
	defer cancel()

	cls, err := r.classifier.Classify(cctx, text, recent, r.registry.Schemas())
	if err != nil {
		// The deterministic path already ran and found nothing, so the only
		// safe degradation is asking the user to rephrase.
		logger.WarnContext(ctx, "Intent classifier failed, degrading to clarification", "error", err)
		return clarify(genericClarification), nil
	}

	return r.resolveClassified(ctx, userID, cls)
}

// keywordIntent returns the single tool the utterance signals, or "" when it
// signals none or more than one.
func keywordIntent(text string) string {
	seen := map[string]bool{}
	for _, word := range tokenize(text) {
		if tool, ok := lexicon[word]; ok {
			seen[tool] = true
		}
	}
	if len(seen) != 1 {
		return ""
	}
	for tool := range seen {
		return tool
	}
	return ""
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
}

// ========== Deterministic resolution ==========

func (r *Resolver) resolveDeterministic(ctx context.Context, userID uuid.UUID, tool, text string) (*Resolution, error) {
	switch tool {
	case ToolAddTask:
		title := extractTitle(text)
		if title == "" {
			return clarify("What should the new task say? For example: 'add a task to buy milk'."), nil
		}
		return &Resolution{Tool: ToolAddTask, Args: map[string]any{"title": title}}, nil

	case ToolListTasks:
		args := map[string]any{}
		if status := statusFilter(text); status != "" {
			args["status"] = status
		}
		return &Resolution{Tool: ToolListTasks, Args: args}, nil

	case ToolCompleteTask, ToolDeleteTask:
		target := extractTarget(text)
		return r.resolveTarget(ctx, userID, tool, target, nil)

	case ToolUpdateTask:
		if m := renamePattern.FindStringSubmatch(text); m != nil {
			newTitle := strings.Trim(strings.TrimSpace(m[2]), `"'`)
			return r.resolveTarget(ctx, userID, ToolUpdateTask, m[1], map[string]any{"title": newTitle})
		}
		if r.classifier != nil {
			return r.resolveViaClassifier(ctx, userID, text)
		}
		return clarify("Tell me which task to change and the new value — for example 'rename buy milk to buy oat milk'."), nil
	}

	return clarify(genericClarification), nil
}

func (r *Resolver) resolveViaClassifier(ctx context.Context, userID uuid.UUID, text string) (*Resolution, error) {
	cctx, cancel := context.WithTimeout(ctx, r.classifyTimeout)
	defer cancel()

	cls, err := r.classifier.Classify(cctx, text, nil, r.registry.Schemas())
	if err != nil {
		logger.WarnContext(ctx, "Intent classifier failed, degrading to clarification", "error", err)
		return clarify(genericClarification), nil
	}
	return r.resolveClassified(ctx, userID, cls)
}

// resolveTarget turns a free-text task reference into a task_id argument,
// or a clarification when the reference is missing, unknown or ambiguous.
// extra carries additional tool arguments (update_task's new values).
func (r *Resolver) resolveTarget(ctx context.Context, userID uuid.UUID, tool, target string, extra map[string]any) (*Resolution, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		titles, err := r.taskTitles(ctx, userID)
		if err != nil {
			return nil, err
		}
		return clarify("Which task did you mean? " + describeTasks(titles)), nil
	}

	// An explicit id skips title matching; existence is the tool's problem.
	if id, err := uuid.Parse(target); err == nil {
		args := map[string]any{"task_id": id.String()}
		mergeArgs(args, extra)
		return &Resolution{Tool: tool, Args: args}, nil
	}

	tasks, _, err := r.tasks.ListTasks(ctx, userID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	matches := matchByTitle(tasks, target)
	switch len(matches) {
	case 1:
		args := map[string]any{"task_id": matches[0].ID.String()}
		mergeArgs(args, extra)
		return &Resolution{Tool: tool, Args: args}, nil
	case 0:
		return clarify(fmt.Sprintf("I couldn't find a task matching '%s'. %s", target, describeTasks(titlesOf(tasks)))), nil
	default:
		return clarify(fmt.Sprintf("I found more than one task matching '%s': %s. Which one did you mean?", target, quoteJoin(titlesOf(matches)))), nil
	}
}

func (r *Resolver) resolveClassified(ctx context.Context, userID uuid.UUID, cls *ports.Classification) (*Resolution, error) {
	if cls == nil {
		return clarify(genericClarification), nil
	}
	if cls.Clarification != "" {
		return clarify(cls.Clarification), nil
	}
	if cls.Tool == "" || !r.registry.Has(cls.Tool) {
		return clarify(genericClarification), nil
	}

	args := cls.Arguments
	if args == nil {
		args = map[string]any{}
	}

	switch cls.Tool {
	case ToolAddTask:
		if strings.TrimSpace(stringArg(args, "title")) == "" {
			return clarify("What should the new task say? For example: 'add a task to buy milk'."), nil
		}
	case ToolCompleteTask, ToolDeleteTask, ToolUpdateTask:
		// The classifier may hand back a title phrase instead of an id;
		// resolve it the same way the deterministic path does.
		if _, err := uuid.Parse(stringArg(args, "task_id")); err != nil {
			target := stringArg(args, "task")
			if target == "" {
				target = stringArg(args, "task_id")
			}
			extra := map[string]any{}
			for k, v := range args {
				if k != "task" && k != "task_id" {
					extra[k] = v
				}
			}
			return r.resolveTarget(ctx, userID, cls.Tool, target, extra)
		}
	}

	return &Resolution{Tool: cls.Tool, Args: args}, nil
}

// ========== Text heuristics ==========

var renamePattern = regexp.MustCompile(`(?i)^\s*(?:please\s+)?(?:rename|change|update)\s+(?:the\s+)?(?:task\s+)?(.+?)\s+to\s+['"]?(.+?)['"]?\s*$`)

// addPrefixes is ordered longest-first so the most specific phrasing wins.
var addPrefixes = []string{
	"add a task called", "add a task named", "add a task to", "add a task for", "add a task",
	"add a todo to", "add a todo", "add task", "add",
	"create a task called", "create a task named", "create a task to", "create a task",
	"create task", "create a todo", "create",
	"new task called", "new task:", "new task",
	"remember to", "remember",
}

// extractTitle pulls the task title out of an add-style utterance, keeping
// the user's original casing.
func extractTitle(text string) string {
	lowered := strings.ToLower(text)
	for _, prefix := range addPrefixes {
		idx := strings.Index(lowered, prefix)
		if idx < 0 {
			continue
		}
		title := text[idx+len(prefix):]
		title = strings.Trim(title, " \t:,.!")
		title = strings.Trim(title, `"'`)
		return strings.TrimSpace(title)
	}
	return ""
}

var targetPrefixes = []string{
	"mark the task", "mark task", "mark",
	"complete the task", "complete task", "complete",
	"finish the task", "finish task", "finish",
	"i have finished", "i finished", "i'm done with", "i am done with",
	"delete the task called", "delete the task", "delete task", "delete",
	"remove the task", "remove task", "remove",
	"cancel the task", "cancel task", "cancel",
	"set",
}

var targetSuffixes = []string{
	"as done", "as complete", "as completed", "as finished",
	"is done", "is complete", "is completed", "is finished",
	"done", "completed", "complete", "finished",
	"from my list", "from the list",
}

// extractTarget strips the command phrasing around a task reference, e.g.
// "mark buy milk as done" -> "buy milk".
func extractTarget(text string) string {
	s := strings.TrimSpace(text)
	// The prefix is ASCII, so byte offsets into s and its lowered form agree.
	if strings.HasPrefix(strings.ToLower(s), "please ") {
		s = strings.TrimSpace(s[len("please "):])
	}

	for _, prefix := range targetPrefixes {
		if strings.HasPrefix(strings.ToLower(s), prefix+" ") {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	for changed := true; changed; {
		changed = false
		for _, suffix := range targetSuffixes {
			low := strings.ToLower(s)
			if strings.HasSuffix(low, " "+suffix) {
				s = strings.TrimSpace(s[:len(s)-len(suffix)-1])
				changed = true
			}
		}
	}

	s = strings.Trim(s, " \t:,.!")
	low := strings.ToLower(s)
	for _, article := range []string{"the task called ", "the task named ", "the task ", "task ", "the ", "my "} {
		if strings.HasPrefix(low, article) {
			s = strings.TrimSpace(s[len(article):])
			break
		}
	}
	return strings.Trim(s, `"'`)
}

func statusFilter(text string) string {
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "completed") || strings.Contains(lowered, "finished") {
		return models.TaskStatusCompleted
	}
	if strings.Contains(lowered, "pending") || strings.Contains(lowered, "open") {
		return models.TaskStatusPending
	}
	return ""
}

// ========== Helpers ==========

func clarify(message string) *Resolution {
	return &Resolution{Clarification: message}
}

func mergeArgs(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// matchByTitle finds tasks whose title matches the reference, case
// insensitively, in either containment direction. More than one hit is a
// tie the caller must treat as ambiguous.
func matchByTitle(tasks []*models.Task, ref string) []*models.Task {
	refLower := strings.ToLower(strings.TrimSpace(ref))
	if refLower == "" {
		return nil
	}
	var matches []*models.Task
	for _, t := range tasks {
		titleLower := strings.ToLower(t.Title)
		if strings.Contains(titleLower, refLower) || strings.Contains(refLower, titleLower) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (r *Resolver) taskTitles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	tasks, _, err := r.tasks.ListTasks(ctx, userID, "", 0, 0)
	if err != nil {
		return nil, err
	}
	return titlesOf(tasks), nil
}

func titlesOf(tasks []*models.Task) []string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	return titles
}

const maxTitlesInClarification = 10

func describeTasks(titles []string) string {
	if len(titles) == 0 {
		return "You don't have any tasks yet."
	}
	shown := titles
	if len(shown) > maxTitlesInClarification {
		shown = shown[:maxTitlesInClarification]
	}
	return "Your tasks: " + quoteJoin(shown) + "."
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}
