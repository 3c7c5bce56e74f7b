package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
	"taskchat/pkg/logger"
)

type StudentServiceImpl struct {
	studentRepo repositories.StudentRepository
	audit       services.AuditService
}

func NewStudentService(studentRepo repositories.StudentRepository, audit services.AuditService) services.StudentService {
	return &StudentServiceImpl{
		studentRepo: studentRepo,
		audit:       audit,
	}
}

func (s *StudentServiceImpl) CreateStudent(ctx context.Context, userID uuid.UUID, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		logger.ErrorContext(ctx, "Failed to create student", "user_id", userID, "error", err)
		return nil, apperrors.Store("failed to create student", err)
	}

	logger.InfoContext(ctx, "Student created", "student_id", student.ID, "user_id", userID)
	s.record(ctx, userID, "student.created", student.ID, student.Name)

	return student, nil
}

func (s *StudentServiceImpl) GetStudent(ctx context.Context, userID, studentID uuid.UUID) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, userID, studentID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Store("failed to load student", err)
	}
	return student, nil
}

func (s *StudentServiceImpl) ListStudents(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Student, int64, error) {
	students, err := s.studentRepo.List(ctx, userID, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list students", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to list students", err)
	}

	total, err := s.studentRepo.Count(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count students", "user_id", userID, "error", err)
		return nil, 0, apperrors.Store("failed to count students", err)
	}

	return students, total, nil
}

func (s *StudentServiceImpl) UpdateStudent(ctx context.Context, userID, studentID uuid.UUID, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if req.Empty() {
		return nil, apperrors.Validation("nothing to update: provide a name or email")
	}

	student, err := s.GetStudent(ctx, userID, studentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	student.UpdatedAt = time.Now()

	if err := s.studentRepo.Update(ctx, student); err != nil {
		logger.ErrorContext(ctx, "Failed to update student", "student_id", studentID, "error", err)
		return nil, apperrors.Store("failed to update student", err)
	}

	logger.InfoContext(ctx, "Student updated", "student_id", studentID, "user_id", userID)
	s.record(ctx, userID, "student.updated", studentID, student.Name)

	return student, nil
}

func (s *StudentServiceImpl) DeleteStudent(ctx context.Context, userID, studentID uuid.UUID) error {
	student, err := s.GetStudent(ctx, userID, studentID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, userID, studentID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete student", "student_id", studentID, "error", err)
		return apperrors.Store("failed to delete student", err)
	}

	logger.InfoContext(ctx, "Student deleted", "student_id", studentID, "user_id", userID)
	s.record(ctx, userID, "student.deleted", studentID, student.Name)

	return nil
}

func (s *StudentServiceImpl) record(ctx context.Context, userID uuid.UUID, action string, resourceID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, &userID, action, "student", resourceID.String(), detail)
}
