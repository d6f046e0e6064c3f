package dto

import (
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required"`
	Kind  domain.CategoryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Icon  string              `json:"icon"`
	Color string              `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateCategoryRequest defines the data allowed when editing a category.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string              `json:"categoryID"`
	Name          string              `json:"name"`
	Kind          domain.CategoryKind `json:"kind"`
	Icon          string              `json:"icon"`
	Color         string              `json:"color"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		Kind:          cat.Kind,
		Icon:          cat.Icon,
		Color:         cat.Color,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs
func ToListCategoryResponse(cats []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
