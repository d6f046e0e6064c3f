package models

import "github.com/shopspring/decimal"

// Budget is the database representation of a monthly budget.
// (user_id, month, year) carries a unique constraint.
type Budget struct {
	BudgetID string `db:"budget_id"`
	UserID   string `db:"user_id"`
	Month    int    `db:"month"`
	Year     int    `db:"year"`
	Note     string `db:"note"`
	AuditFields
}

// BudgetCategory is the database representation of a budget/category link.
// Cascade-deleted with its parent budget or category.
type BudgetCategory struct {
	BudgetCategoryID string          `db:"budget_category_id"`
	BudgetID         string          `db:"budget_id"`
	CategoryID       string          `db:"category_id"`
	Planned          decimal.Decimal `db:"planned"`
	ReminderEnabled  bool            `db:"reminder_enabled"`
	AuditFields
}
