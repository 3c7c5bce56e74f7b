package serviceimpl

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskchat/application/agent"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
	"taskchat/pkg/logger"
)

// actionClarification marks turns that answered with a question instead of
// running a tool.
const actionClarification = "clarification"

// ChatServiceImpl routes each inbound message through resolve-then-invoke.
// It holds no per-conversation state; every turn is reconstructed from the
// message log, so any instance can serve any turn.
type ChatServiceImpl struct {
	convRepo repositories.ConversationRepository
	registry *agent.Registry
	resolver *agent.Resolver

	historyLimit int
	toolTimeout  time.Duration
}

func NewChatService(convRepo repositories.ConversationRepository, registry *agent.Registry, resolver *agent.Resolver, historyLimit int, toolTimeout time.Duration) services.ChatService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	if toolTimeout <= 0 {
		toolTimeout = 10 * time.Second
	}
	return &ChatServiceImpl{
		convRepo:     convRepo,
		registry:     registry,
		resolver:     resolver,
		historyLimit: historyLimit,
		toolTimeout:  toolTimeout,
	}
}

func (s *ChatServiceImpl) SubmitMessage(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, text string) (*services.ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("message must not be empty")
	}

	conversation, err := s.resolveConversation(ctx, userID, conversationID, text)
	if err != nil {
		return nil, err
	}

	// History is captured before this turn is appended, so the classifier
	// sees exactly the turns that preceded the user's message.
	recent, err := s.recentHistory(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	if err := s.append(ctx, conversation.ID, models.MessageRoleUser, text); err != nil {
		return nil, err
	}

	response, action, err := s.respond(ctx, userID, text, recent)
	if err != nil {
		return nil, err
	}

	if err := s.append(ctx, conversation.ID, models.MessageRoleAssistant, response); err != nil {
		return nil, err
	}
	if err := s.convRepo.Touch(ctx, conversation.ID); err != nil {
		logger.WarnContext(ctx, "Failed to touch conversation", "conversation_id", conversation.ID, "error", err)
	}

	logger.InfoContext(ctx, "Chat turn completed",
		"conversation_id", conversation.ID, "user_id", userID, "action", action)

	return &services.ChatResult{
		Response:        response,
		ConversationID:  conversation.ID,
		ActionPerformed: action,
	}, nil
}

// respond resolves the utterance and runs the chosen tool. Validation,
// not-found and collaborator problems become conversational replies; only
// store failures propagate as errors.
func (s *ChatServiceImpl) respond(ctx context.Context, userID uuid.UUID, text string, recent []ports.ClassifierMessage) (string, string, error) {
	resolution, err := s.resolver.Resolve(ctx, userID, text, recent)
	if err != nil {
		if apperrors.IsStore(err) {
			return "", "", err
		}
		logger.WarnContext(ctx, "Resolver error answered conversationally", "error", err)
		return "Sorry, " + apperrors.UserMessage(err) + ".", actionClarification, nil
	}

	if resolution.Clarification != "" {
		return resolution.Clarification, actionClarification, nil
	}

	tctx, cancel := context.WithTimeout(ctx, s.toolTimeout)
	defer cancel()

	result, err := s.registry.Invoke(tctx, userID, resolution.Tool, resolution.Args)
	if err != nil {
		if apperrors.IsStore(err) {
			return "", "", err
		}
		logger.WarnContext(ctx, "Tool error answered conversationally",
			"tool", resolution.Tool, "error", err)
		return "Sorry, " + apperrors.UserMessage(err) + ".", actionClarification, nil
	}

	return result.Message, resolution.Tool, nil
}

func (s *ChatServiceImpl) resolveConversation(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, text string) (*models.Conversation, error) {
	if conversationID != nil {
		conversation, err := s.convRepo.GetByID(ctx, userID, *conversationID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, err
			}
			return nil, apperrors.Store("failed to load conversation", err)
		}
		return conversation, nil
	}

	conversation := &models.Conversation{
		ID:        uuid.New(),
		Title:     conversationTitle(text),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.convRepo.Create(ctx, conversation); err != nil {
		logger.ErrorContext(ctx, "Failed to create conversation", "user_id", userID, "error", err)
		return nil, apperrors.Store("failed to create conversation", err)
	}

	logger.InfoContext(ctx, "Conversation started", "conversation_id", conversation.ID, "user_id", userID)
	return conversation, nil
}

func (s *ChatServiceImpl) recentHistory(ctx context.Context, conversationID uuid.UUID) ([]ports.ClassifierMessage, error) {
	messages, err := s.convRepo.RecentMessages(ctx, conversationID, s.historyLimit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load chat history", "conversation_id", conversationID, "error", err)
		return nil, apperrors.Store("failed to load chat history", err)
	}

	recent := make([]ports.ClassifierMessage, len(messages))
	for i, m := range messages {
		recent[i] = ports.ClassifierMessage{Role: m.Role, Content: m.Content}
	}
	return recent, nil
}

func (s *ChatServiceImpl) append(ctx context.Context, conversationID uuid.UUID, role, content string) error {
	message := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.convRepo.AppendMessage(ctx, message); err != nil {
		logger.ErrorContext(ctx, "Failed to append message",
			"conversation_id", conversationID, "role", role, "error", err)
		return apperrors.Store("failed to append message", err)
	}
	return nil
}

func (s *ChatServiceImpl) ListConversations(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Conversation, int64, error) {
	conversations, err := s.convRepo.List(ctx, userID, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list conversations", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to list conversations", err)
	}

	total, err := s.convRepo.Count(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count conversations", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to count conversations", err)
	}

	return conversations, total, nil
}

func (s *ChatServiceImpl) GetMessages(ctx context.Context, userID, conversationID uuid.UUID, offset, limit int) ([]*models.Message, error) {
	if _, err := s.convRepo.GetByID(ctx, userID, conversationID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Store("failed to load conversation", err)
	}

	messages, err := s.convRepo.Messages(ctx, conversationID, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load messages", "conversation_id", conversationID, "error", err)
		return nil, apperrors.Store("failed to load messages", err)
	}
	return messages, nil
}

const maxConversationTitle = 60

// conversationTitle derives a title from the opening message.
func conversationTitle(text string) string {
	if utf8.RuneCountInString(text) <= maxConversationTitle {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxConversationTitle-3])) + "..."
}
