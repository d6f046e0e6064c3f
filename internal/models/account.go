package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a financial account.
// Balance is the cached signed sum maintained by the reconciler.
type Account struct {
	AccountID   string           `db:"account_id"`
	UserID      string           `db:"user_id"`
	Name        string           `db:"name"`
	AccountType string           `db:"account_type"`
	CreditLimit *decimal.Decimal `db:"credit_limit"` // Nullable
	Balance     decimal.Decimal  `db:"balance"`
	IsActive    bool             `db:"is_active"`
	AuditFields
}
