package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates the direction of money movement for a transaction.
type TransactionKind string

const (
	Income   TransactionKind = "INCOME"
	Expense  TransactionKind = "EXPENSE"
	Transfer TransactionKind = "TRANSFER"
)

// Transaction represents a single money movement against an account.
// Amount is always positive; the kind determines the sign applied during
// balance reconciliation. A TRANSFER debits the source account and credits
// the destination account.
type Transaction struct {
	TransactionID        string          `json:"transactionID"` // Primary key (UUID)
	UserID               string          `json:"userID"`        // FK -> users.user_id (Not Null)
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount"` // Positive value
	Kind                 TransactionKind `json:"kind"`   // INCOME, EXPENSE or TRANSFER
	OccurredAt           time.Time       `json:"occurredAt"`
	AccountID            string          `json:"accountID"`            // Source account (Not Null)
	CategoryID           *string         `json:"categoryID"`           // Nullable FK -> categories
	DestinationAccountID *string         `json:"destinationAccountID"` // Only meaningful for TRANSFER
	AuditFields
}

// Validate checks the structural invariants of a transaction.
func (t Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount.String())
	}
	switch t.Kind {
	case Income, Expense:
		if t.DestinationAccountID != nil {
			return fmt.Errorf("destination account is only valid for %s transactions", Transfer)
		}
	case Transfer:
		if t.DestinationAccountID == nil {
			return fmt.Errorf("transfer requires a destination account")
		}
		if *t.DestinationAccountID == t.AccountID {
			return fmt.Errorf("transfer must reference two distinct accounts")
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	if t.AccountID == "" {
		return fmt.Errorf("transaction requires a source account")
	}
	return nil
}

// Touches returns the IDs of every account this transaction affects.
// The balance reconciler must run for each of them after a mutation.
func (t Transaction) Touches() []string {
	if t.Kind == Transfer && t.DestinationAccountID != nil {
		return []string{t.AccountID, *t.DestinationAccountID}
	}
	return []string{t.AccountID}
}
