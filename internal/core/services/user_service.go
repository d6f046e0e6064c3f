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
	"github.com/google/uuid"
)

type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user in repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.userRepo.DeactivateUser(ctx, userID, time.Now()); err != nil {
		logger.Error("Failed to deactivate user in repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}
	logger.Info("User deactivated", slog.String("user_id", userID))
	return nil
}

// FindOrCreateGoogleUser resolves the account for a verified Google profile.
// A first-time login creates a passwordless user bound to the Google provider.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.ErrForbidden
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		AuthProvider: domain.ProviderGoogle,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to save google user in repository", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created via Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
