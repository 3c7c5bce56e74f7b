package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskchat/domain/dto"
	"taskchat/domain/models"
	"taskchat/domain/ports"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	"taskchat/pkg/apperrors"
	"taskchat/pkg/logger"
	"taskchat/pkg/utils"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	revoker  ports.TokenRevoker
	audit    services.AuditService

	jwtSecret string
	jwtTTL    time.Duration
}

func NewUserService(userRepo repositories.UserRepository, revoker ports.TokenRevoker, audit services.AuditService, jwtSecret string, jwtTTL time.Duration) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		revoker:   revoker,
		audit:     audit,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		logger.WarnContext(ctx, "Registration rejected, email already exists", "email", req.Email)
		return nil, apperrors.Validation("email already registered")
	}
	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		logger.WarnContext(ctx, "Registration rejected, username already exists", "username", req.Username)
		return nil, apperrors.Validation("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperrors.Store("failed to hash password", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hashed),
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Store("failed to create user", err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)
	s.record(ctx, &user.ID, "user.registered", user.ID, user.Email)

	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed, email not found", "email", req.Email)
		return "", nil, apperrors.Validation("invalid email or password")
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed, account disabled", "user_id", user.ID)
		return "", nil, apperrors.Validation("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed, invalid password", "user_id", user.ID)
		return "", nil, apperrors.Validation("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, apperrors.Store("failed to generate token", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	s.record(ctx, &user.ID, "user.logged_in", user.ID, user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, tokenID string, expiry time.Time, user *models.User) error {
	if s.revoker == nil || tokenID == "" {
		logger.WarnContext(ctx, "Logout without revocation store, token stays valid until expiry", "user_id", user.ID)
		return nil
	}

	// Denylist the token only for what is left of its lifetime.
	ttl := time.Until(expiry)
	if ttl <= 0 {
		logger.InfoContext(ctx, "User logged out with expired token", "user_id", user.ID)
		s.record(ctx, &user.ID, "user.logged_out", user.ID, user.Email)
		return nil
	}

	if err := s.revoker.Revoke(ctx, tokenID, ttl); err != nil {
		logger.ErrorContext(ctx, "Failed to revoke token", "user_id", user.ID, "error", err)
		return apperrors.Store("failed to revoke token", err)
	}

	logger.InfoContext(ctx, "User logged out", "user_id", user.ID)
	s.record(ctx, &user.ID, "user.logged_out", user.ID, user.Email)

	return nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Store("failed to load user", err)
	}
	return user, nil
}

func (s *UserServiceImpl) record(ctx context.Context, userID *uuid.UUID, action string, resourceID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, userID, action, "user", resourceID.String(), detail)
}
