package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type UserSvcFacade interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID string) error

	// FindOrCreateGoogleUser resolves the user for a verified Google profile,
	// creating one on first login.
	FindOrCreateGoogleUser(ctx context.Context, email, name string) (*domain.User, error)
}
