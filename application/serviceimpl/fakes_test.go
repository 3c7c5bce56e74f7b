package serviceimpl

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/pkg/apperrors"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks []*models.Task
	err   error
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, apperrors.NotFound("task not found")
}

func (f *fakeTaskRepo) List(_ context.Context, userID uuid.UUID, status string, offset, limit int) ([]*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Task
	for _, t := range f.tasks {
		if t.UserID != userID || (status != "" && t.Status != status) {
			continue
		}
		out = append(out, t)
	}
	if offset > 0 && offset < len(out) {
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTaskRepo) Count(_ context.Context, userID uuid.UUID, status string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, t := range f.tasks {
		if t.UserID == userID && (status == "" || t.Status == status) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks[i] = task
			return nil
		}
	}
	return apperrors.NotFound("task not found")
}

func (f *fakeTaskRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("task not found")
}

type fakeConvRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID][]*models.Message
	err           error
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID][]*models.Message),
	}
}

func (f *fakeConvRepo) Create(_ context.Context, conversation *models.Conversation) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConvRepo) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Conversation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	conversation, ok := f.conversations[id]
	if !ok || conversation.UserID != userID {
		return nil, apperrors.NotFound("conversation not found")
	}
	return conversation, nil
}

func (f *fakeConvRepo) List(_ context.Context, userID uuid.UUID, offset, limit int) ([]*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Conversation
	for _, c := range f.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConvRepo) Count(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.conversations {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeConvRepo) Touch(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.conversations[id]; ok {
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeConvRepo) AppendMessage(_ context.Context, message *models.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[message.ConversationID] = append(f.messages[message.ConversationID], message)
	return nil
}

func (f *fakeConvRepo) RecentMessages(_ context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.messages[conversationID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]*models.Message, len(all))
	copy(out, all)
	return out, nil
}

func (f *fakeConvRepo) Messages(_ context.Context, conversationID uuid.UUID, offset, limit int) ([]*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.messages[conversationID]
	if offset > 0 && offset < len(all) {
		all = all[offset:]
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*models.Message, len(all))
	copy(out, all)
	return out, nil
}

// recordingClassifier captures what the dispatcher hands to the collaborator.
type recordingClassifier struct {
	result     *ports.Classification
	err        error
	calls      int
	lastText   string
	lastRecent []ports.ClassifierMessage
}

func (f *recordingClassifier) Classify(_ context.Context, text string, recent []ports.ClassifierMessage, _ []ports.ToolSchema) (*ports.Classification, error) {
	f.calls++
	f.lastText = text
	f.lastRecent = recent
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[path] = data
	return "/files/" + path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	delete(f.uploads, path)
	return nil
}

func (f *fakeStorage) GetFileURL(path string) string { return "/files/" + path }

func (f *fakeStorage) GetProviderName() string { return "fake" }

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}
