package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a ledger account for display and reporting.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Cash       AccountType = "CASH"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
)

// Account represents a financial account within the core domain.
// Balance is a materialized cache of the signed sum of the account's
// transactions; it is never authoritative and is rewritten by the
// balance reconciler after every transaction mutation.
type Account struct {
	AccountID   string           `json:"accountID"`   // Primary key (UUID)
	UserID      string           `json:"userID"`      // FK -> users.user_id (NON-NULL)
	Name        string           `json:"name"`        // User-defined name
	AccountType AccountType      `json:"accountType"` // CHECKING, SAVINGS, etc.
	CreditLimit *decimal.Decimal `json:"creditLimit"` // Nullable; meaningful for CREDIT accounts
	Balance     decimal.Decimal  `json:"balance"`     // Cached signed sum of transactions
	IsActive    bool             `json:"isActive"`    // Soft delete flag
	AuditFields
}
