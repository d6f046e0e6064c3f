package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}
