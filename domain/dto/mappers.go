package dto

import "taskchat/domain/models"

func UserToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func TaskToTaskResponse(t *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = *TaskToTaskResponse(t)
	}
	return out
}

func StudentToStudentResponse(s *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func StudentsToStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, s := range students {
		out[i] = *StudentToStudentResponse(s)
	}
	return out
}

func ConversationToConversationResponse(c *models.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ConversationsToConversationResponses(convs []*models.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, len(convs))
	for i, c := range convs {
		out[i] = *ConversationToConversationResponse(c)
	}
	return out
}

func MessageToMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func MessagesToMessageResponses(messages []*models.Message) []MessageResponse {
	out := make([]MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = *MessageToMessageResponse(m)
	}
	return out
}

func AuditLogToAuditLogResponse(e *models.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Detail:       e.Detail,
		CreatedAt:    e.CreatedAt,
	}
}

func AuditLogsToAuditLogResponses(entries []*models.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		out[i] = *AuditLogToAuditLogResponse(e)
	}
	return out
}
