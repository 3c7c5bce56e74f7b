package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskchat/domain/dto"
	"taskchat/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	// Logout revokes the access token for its remaining lifetime.
	Logout(ctx context.Context, tokenID string, expiry time.Time, user *models.User) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
