package services

import (
	"context"
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type RecurringRuleManager interface {
	CreateRule(ctx context.Context, userID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error)
	GetRule(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error)
	ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error)
	UpdateRule(ctx context.Context, userID, ruleID string, req dto.UpdateRecurringRuleRequest) (*domain.RecurringRule, error)
	DeleteRule(ctx context.Context, userID, ruleID string) error
}

// RecurrenceEngine is the scheduled evaluation pass: materialize overdue
// rules into transactions and remind about rules coming due.
type RecurrenceEngine interface {
	ProcessDueRules(ctx context.Context, now time.Time) error
}

type RecurringSvcFacade interface {
	RecurringRuleManager
	RecurrenceEngine
}
