package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a money movement.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	UserID               string          `db:"user_id"`
	Description          string          `db:"description"`
	Amount               decimal.Decimal `db:"amount"`
	Kind                 string          `db:"kind"`
	OccurredAt           time.Time       `db:"occurred_at"`
	AccountID            string          `db:"account_id"`
	CategoryID           *string         `db:"category_id"`             // Nullable
	DestinationAccountID *string         `db:"destination_account_id"` // Nullable, TRANSFER only
	AuditFields
}
