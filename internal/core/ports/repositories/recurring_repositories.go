package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
)

// RecurringReader defines read operations for recurring rule data
type RecurringReader interface {
	// FindRuleByID retrieves a specific rule by its unique identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.RecurringRule, error)

	// ListRules retrieves all rules of a user.
	ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error)

	// ListDueRules retrieves every active rule with next_due <= asOf, across
	// all users. Used by the recurrence engine.
	ListDueRules(ctx context.Context, asOf time.Time) ([]domain.RecurringRule, error)

	// ListRulesDueBetween retrieves every active rule with after < next_due <= until,
	// across all users. Used for due-soon reminders.
	ListRulesDueBetween(ctx context.Context, after time.Time, until time.Time) ([]domain.RecurringRule, error)
}

// RecurringWriter defines write operations for recurring rule data
type RecurringWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.RecurringRule) error

	// UpdateRule updates a rule's user-editable fields. next_due is not touched.
	UpdateRule(ctx context.Context, rule domain.RecurringRule) error

	// UpdateRuleNextDue advances a rule's due date. Only the recurrence engine
	// calls this.
	UpdateRuleNextDue(ctx context.Context, ruleID string, nextDue time.Time, now time.Time) error

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, ruleID string) error
}

// RecurringRepositoryFacade combines all recurring-rule repository interfaces
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
