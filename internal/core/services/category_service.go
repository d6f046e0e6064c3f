package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) findOwnedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Kind:       req.Kind,
		Icon:       req.Icon,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, userID, categoryID)
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		logger.Error("Failed to list categories from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Transactions keep their rows with the
// category reference nulled out; budget links cascade away in the database.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to delete category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}
