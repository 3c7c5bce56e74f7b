package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskchat/domain/models"
	"taskchat/domain/repositories"
	"taskchat/pkg/apperrors"
)

type StudentRepositoryImpl struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) repositories.StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

func (r *StudentRepositoryImpl) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *StudentRepositoryImpl) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("student not found")
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepositoryImpl) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Student, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var students []*models.Student
	err := query.Find(&students).Error
	return students, err
}

func (r *StudentRepositoryImpl) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *StudentRepositoryImpl) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *StudentRepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Student{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("student not found")
	}
	return nil
}
