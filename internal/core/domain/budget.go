package domain

import "github.com/shopspring/decimal"

// Budget is a monthly planning envelope. Unique per (user, month, year).
type Budget struct {
	BudgetID string `json:"budgetID"` // Primary key (UUID)
	UserID   string `json:"userID"`   // FK -> users.user_id (Not Null)
	Month    int    `json:"month"`    // 1..12
	Year     int    `json:"year"`
	Note     string `json:"note"` // Free text
	AuditFields
}

// BudgetCategory links a budget to a category with a planned amount.
// Rows are cascade-deleted when the parent budget or category is deleted.
type BudgetCategory struct {
	BudgetCategoryID string          `json:"budgetCategoryID"` // Primary key (UUID)
	BudgetID         string          `json:"budgetID"`         // FK -> budgets (cascade)
	CategoryID       string          `json:"categoryID"`       // FK -> categories (cascade)
	Planned          decimal.Decimal `json:"planned"`          // Planned spend for the period
	ReminderEnabled  bool            `json:"reminderEnabled"`  // Gates the 80% reminder
	AuditFields
}
