package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `gorm:"size:255;not null;index"`
	Email     string    `gorm:"size:255;not null"`
	UserID    uuid.UUID `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Student) TableName() string {
	return "students"
}
