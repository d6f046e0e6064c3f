package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringRule is the database representation of a bill/subscription rule.
type RecurringRule struct {
	RuleID         string          `db:"rule_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Amount         decimal.Decimal `db:"amount"`
	AccountID      string          `db:"account_id"`
	CategoryID     *string         `db:"category_id"` // Nullable
	NextDue        time.Time       `db:"next_due"`
	Frequency      string          `db:"frequency"`
	IsSubscription bool            `db:"is_subscription"`
	IsActive       bool            `db:"is_active"`
	Kind           string          `db:"kind"`
	AuditFields
}
