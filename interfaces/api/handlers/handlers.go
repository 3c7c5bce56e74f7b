package handlers

import (
	"gorm.io/gorm"

	"taskchat/domain/ports"
	"taskchat/domain/services"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	UserService    services.UserService
	TaskService    services.TaskService
	StudentService services.StudentService
	ChatService    services.ChatService
	AuditService   services.AuditService
	StoragePort    ports.StoragePort
	TokenRevoker   ports.TokenRevoker
	DB             *gorm.DB
	ReadyChecks    []ReadyCheck
	JWTSecret      string
}

// Handlers bundles all HTTP handlers.
type Handlers struct {
	AuthHandler    *AuthHandler
	TaskHandler    *TaskHandler
	StudentHandler *StudentHandler
	ChatHandler    *ChatHandler
	AuditHandler   *AuditHandler
	HealthHandler  *HealthHandler
}

func storageProvider(storage ports.StoragePort) string {
	if storage == nil {
		return ""
	}
	return storage.GetProviderName()
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:    NewAuthHandler(services.UserService),
		TaskHandler:    NewTaskHandler(services.TaskService, storageProvider(services.StoragePort)),
		StudentHandler: NewStudentHandler(services.StudentService),
		ChatHandler:    NewChatHandler(services.ChatService),
		AuditHandler:   NewAuditHandler(services.AuditService),
		HealthHandler:  NewHealthHandler(services.DB, services.ReadyChecks),
	}
}
