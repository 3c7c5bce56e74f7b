package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskchat/application/agent"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
)

type chatFixture struct {
	chat     services.ChatService
	tasks    services.TaskService
	taskRepo *fakeTaskRepo
	convRepo *fakeConvRepo
}

func newChatFixture(classifier ports.IntentClassifier) *chatFixture {
	taskRepo := &fakeTaskRepo{}
	convRepo := newFakeConvRepo()
	tasks := NewTaskService(taskRepo, nil, nil)
	registry := agent.NewRegistry(tasks)
	resolver := agent.NewResolver(registry, tasks, classifier, time.Second)
	return &chatFixture{
		chat:     NewChatService(convRepo, registry, resolver, 10, time.Second),
		tasks:    tasks,
		taskRepo: taskRepo,
		convRepo: convRepo,
	}
}

func TestSubmitMessageAddsTask(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	result, err := f.chat.SubmitMessage(context.Background(), userID, nil, "add a task to buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Added 'buy milk' to your list.", result.Response)
	assert.Equal(t, agent.ToolAddTask, result.ActionPerformed)
	assert.NotEqual(t, uuid.Nil, result.ConversationID)

	require.Len(t, f.taskRepo.tasks, 1)
	assert.Equal(t, "buy milk", f.taskRepo.tasks[0].Title)
	assert.Equal(t, userID, f.taskRepo.tasks[0].UserID)

	messages := f.convRepo.messages[result.ConversationID]
	require.Len(t, messages, 2)
	assert.Equal(t, models.MessageRoleUser, messages[0].Role)
	assert.Equal(t, "add a task to buy milk", messages[0].Content)
	assert.Equal(t, models.MessageRoleAssistant, messages[1].Role)
	assert.Equal(t, result.Response, messages[1].Content)
}

func TestSubmitMessageListsTasks(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	_, err := f.chat.SubmitMessage(context.Background(), userID, nil, "add a task to buy milk")
	require.NoError(t, err)

	result, err := f.chat.SubmitMessage(context.Background(), userID, nil, "show me my tasks")
	require.NoError(t, err)
	assert.Equal(t, agent.ToolListTasks, result.ActionPerformed)
	assert.Contains(t, result.Response, "1. [ ] buy milk")
}

func TestSubmitMessageAmbiguousTarget(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	for _, title := range []string{"buy milk", "buy milk and eggs"} {
		_, err := f.chat.SubmitMessage(context.Background(), userID, nil, "add a task to "+title)
		require.NoError(t, err)
	}

	result, err := f.chat.SubmitMessage(context.Background(), userID, nil, "mark buy milk as done")
	require.NoError(t, err)
	assert.Equal(t, "clarification", result.ActionPerformed)
	assert.Contains(t, result.Response, "Which one did you mean?")

	// Neither task was touched.
	for _, task := range f.taskRepo.tasks {
		assert.Equal(t, models.TaskStatusPending, task.Status)
	}
}

func TestSubmitMessageUnknownTarget(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	result, err := f.chat.SubmitMessage(context.Background(), userID, nil, "delete task 9999")
	require.NoError(t, err)
	assert.Equal(t, "clarification", result.ActionPerformed)
	assert.Contains(t, result.Response, "I couldn't find a task matching '9999'")
}

func TestSubmitMessageContinuesConversation(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	first, err := f.chat.SubmitMessage(context.Background(), userID, nil, "add a task to buy milk")
	require.NoError(t, err)

	second, err := f.chat.SubmitMessage(context.Background(), userID, &first.ConversationID, "show me my tasks")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, f.convRepo.messages[first.ConversationID], 4)
	assert.Len(t, f.convRepo.conversations, 1)
}

func TestSubmitMessageRejectsForeignConversation(t *testing.T) {
	f := newChatFixture(nil)
	owner := uuid.New()
	intruder := uuid.New()

	result, err := f.chat.SubmitMessage(context.Background(), owner, nil, "add a task to buy milk")
	require.NoError(t, err)

	_, err = f.chat.SubmitMessage(context.Background(), intruder, &result.ConversationID, "show me my tasks")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSubmitMessageEmptyText(t *testing.T) {
	f := newChatFixture(nil)

	_, err := f.chat.SubmitMessage(context.Background(), uuid.New(), nil, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmitMessageHistoryWindow(t *testing.T) {
	classifier := &recordingClassifier{result: &ports.Classification{
		Clarification: "Could you rephrase that?",
	}}
	f := newChatFixture(classifier)
	userID := uuid.New()

	first, err := f.chat.SubmitMessage(context.Background(), userID, nil, "hmmm")
	require.NoError(t, err)

	// The opening turn has no history yet.
	assert.Empty(t, classifier.lastRecent)

	for i := 0; i < 8; i++ {
		_, err = f.chat.SubmitMessage(context.Background(), userID, &first.ConversationID, fmt.Sprintf("hmmm %d", i))
		require.NoError(t, err)
	}

	// 9 turns so far = 18 stored messages; the window is capped at 10 and
	// excludes the message being processed.
	_, err = f.chat.SubmitMessage(context.Background(), userID, &first.ConversationID, "hmmm final")
	require.NoError(t, err)
	require.Len(t, classifier.lastRecent, 10)
	for _, m := range classifier.lastRecent {
		assert.NotEqual(t, "hmmm final", m.Content)
	}
	assert.Equal(t, "hmmm final", classifier.lastText)
}

func TestSubmitMessageClassifierFailureDegrades(t *testing.T) {
	classifier := &recordingClassifier{err: assert.AnError}
	f := newChatFixture(classifier)

	result, err := f.chat.SubmitMessage(context.Background(), uuid.New(), nil, "hmmm")
	require.NoError(t, err)
	assert.Equal(t, "clarification", result.ActionPerformed)
	assert.NotEmpty(t, result.Response)
}

func TestSubmitMessageStoreFailurePropagates(t *testing.T) {
	f := newChatFixture(nil)
	userID := uuid.New()

	_, err := f.chat.SubmitMessage(context.Background(), userID, nil, "add a task to buy milk")
	require.NoError(t, err)

	f.taskRepo.err = assert.AnError
	_, err = f.chat.SubmitMessage(context.Background(), userID, nil, "show me my tasks")
	require.Error(t, err)
	assert.True(t, apperrors.IsStore(err))
}

func TestConversationTitleTruncation(t *testing.T) {
	long := strings.Repeat("remember the milk ", 10)
	title := conversationTitle(long)
	assert.LessOrEqual(t, len([]rune(title)), 60)
	assert.True(t, strings.HasSuffix(title, "..."))

	assert.Equal(t, "short", conversationTitle("short"))
}

func TestGetMessagesChecksOwnership(t *testing.T) {
	f := newChatFixture(nil)
	owner := uuid.New()

	result, err := f.chat.SubmitMessage(context.Background(), owner, nil, "add a task to buy milk")
	require.NoError(t, err)

	messages, err := f.chat.GetMessages(context.Background(), owner, result.ConversationID, 0, 50)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	_, err = f.chat.GetMessages(context.Background(), uuid.New(), result.ConversationID, 0, 50)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
