package services

import (
	"context"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
)

type StudentService interface {
	CreateStudent(ctx context.Context, userID uuid.UUID, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, userID, studentID uuid.UUID) (*models.Student, error)
	ListStudents(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, userID, studentID uuid.UUID, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, userID, studentID uuid.UUID) error
}
