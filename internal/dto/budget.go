package dto

import (
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to open a budget period.
type CreateBudgetRequest struct {
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Year  int    `json:"year" binding:"required,min=1970"`
	Note  string `json:"note"`
}

// UpdateBudgetRequest defines the data allowed when editing a budget.
// The period itself is immutable.
type UpdateBudgetRequest struct {
	Note *string `json:"note"`
}

// AddBudgetCategoryRequest links a category into a budget with a planned amount.
type AddBudgetCategoryRequest struct {
	CategoryID      string          `json:"categoryID" binding:"required"`
	Planned         decimal.Decimal `json:"planned" binding:"required"`
	ReminderEnabled bool            `json:"reminderEnabled"`
}

// UpdateBudgetCategoryRequest edits a budget/category link.
type UpdateBudgetCategoryRequest struct {
	Planned         *decimal.Decimal `json:"planned"`
	ReminderEnabled *bool            `json:"reminderEnabled"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID      string    `json:"budgetID"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// BudgetCategoryResponse defines the data returned for a budget/category link.
type BudgetCategoryResponse struct {
	BudgetCategoryID string          `json:"budgetCategoryID"`
	BudgetID         string          `json:"budgetID"`
	CategoryID       string          `json:"categoryID"`
	Planned          decimal.Decimal `json:"planned"`
	ReminderEnabled  bool            `json:"reminderEnabled"`
}

// BudgetDetailResponse combines a budget with its category links.
type BudgetDetailResponse struct {
	BudgetResponse
	Categories []BudgetCategoryResponse `json:"categories"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		Month:         b.Month,
		Year:          b.Year,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToBudgetCategoryResponse converts a domain.BudgetCategory link
func ToBudgetCategoryResponse(link *domain.BudgetCategory) BudgetCategoryResponse {
	return BudgetCategoryResponse{
		BudgetCategoryID: link.BudgetCategoryID,
		BudgetID:         link.BudgetID,
		CategoryID:       link.CategoryID,
		Planned:          link.Planned,
		ReminderEnabled:  link.ReminderEnabled,
	}
}

// ToBudgetDetailResponse converts a budget plus its links.
func ToBudgetDetailResponse(b *domain.Budget, links []domain.BudgetCategory) BudgetDetailResponse {
	cats := make([]BudgetCategoryResponse, len(links))
	for i, link := range links {
		cats[i] = ToBudgetCategoryResponse(&link)
	}
	return BudgetDetailResponse{BudgetResponse: ToBudgetResponse(b), Categories: cats}
}

// ToListBudgetResponse converts a slice of domain.Budget to response DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}
