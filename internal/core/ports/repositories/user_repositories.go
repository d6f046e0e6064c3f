package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeactivateUser marks a user as inactive.
	DeactivateUser(ctx context.Context, userID string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
