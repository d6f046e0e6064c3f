package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the calendar cadence of a recurring rule.
type Frequency string

const (
	Weekly    Frequency = "WEEKLY"
	Monthly   Frequency = "MONTHLY"
	Quarterly Frequency = "QUARTERLY"
	Yearly    Frequency = "YEARLY"
)

// Next returns the due date one period after t.
// Weekly advancement is exactly 7 days; month-based advancement follows
// time.AddDate, which normalizes past month ends (Jan 31 + 1 month = Mar 2/3).
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// RecurringRule describes a bill or subscription that materializes a
// transaction each period. NextDue is advanced only by the recurrence
// engine; user edits never move it.
type RecurringRule struct {
	RuleID         string          `json:"ruleID"` // Primary key (UUID)
	UserID         string          `json:"userID"` // FK -> users.user_id (Not Null)
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`     // Positive value
	AccountID      string          `json:"accountID"`  // Account the materialized transaction hits
	CategoryID     *string         `json:"categoryID"` // Nullable FK -> categories
	NextDue        time.Time       `json:"nextDue"`
	Frequency      Frequency       `json:"frequency"`
	IsSubscription bool            `json:"isSubscription"` // Subscription vs bill
	IsActive       bool            `json:"isActive"`
	Kind           TransactionKind `json:"kind"` // Kind of the materialized transaction, default EXPENSE
	AuditFields
}

// IsDue reports whether the rule's next occurrence is at or before now.
func (r RecurringRule) IsDue(now time.Time) bool {
	return r.IsActive && !r.NextDue.After(now)
}

// IsDueSoon reports whether the rule falls inside the reminder lookahead
// window (now, now+window] without being due yet.
func (r RecurringRule) IsDueSoon(now time.Time, window time.Duration) bool {
	return r.IsActive && r.NextDue.After(now) && !r.NextDue.After(now.Add(window))
}
