package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task always belongs to exactly one owner; every query is scoped by UserID.
type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:1000"`
	Status      string    `gorm:"default:'pending'"`
	UserID      uuid.UUID `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

func ValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}
