package repositories

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories of a user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Budget links cascade in the database.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
