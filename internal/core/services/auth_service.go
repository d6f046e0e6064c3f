package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/centsible/centsible_backend/internal/platform/config"
	"github.com/centsible/centsible_backend/internal/utils"
	"github.com/google/uuid"
)

type AuthService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	return utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, "", err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user in repository", slog.String("error", err.Error()))
		}
		return nil, "", err
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		logger.Error("Failed to issue token after registration", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, "", err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same answer as a wrong password, so emails cannot be probed.
			return nil, "", apperrors.ErrForbidden
		}
		return nil, "", err
	}

	if !user.IsActive || user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, "", apperrors.ErrForbidden
	}

	token, err := s.IssueToken(user)
	if err != nil {
		logger.Error("Failed to issue token on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, "", err
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return user, token, nil
}
