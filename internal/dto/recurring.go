package dto

import (
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRuleRequest defines the data needed to create a bill or
// subscription rule. FirstDue seeds next_due; after creation the recurrence
// engine owns the due date.
type CreateRecurringRuleRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	AccountID      string                 `json:"accountID" binding:"required"`
	CategoryID     *string                `json:"categoryID"`
	FirstDue       time.Time              `json:"firstDue" binding:"required"`
	Frequency      domain.Frequency       `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	IsSubscription bool                   `json:"isSubscription"`
	Kind           domain.TransactionKind `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"` // Defaults to EXPENSE
}

// UpdateRecurringRuleRequest defines the user-editable fields of a rule.
// There is deliberately no due-date field here.
type UpdateRecurringRuleRequest struct {
	Name           *string           `json:"name"`
	Amount         *decimal.Decimal  `json:"amount"`
	AccountID      *string           `json:"accountID"`
	CategoryID     *string           `json:"categoryID"`
	Frequency      *domain.Frequency `json:"frequency" binding:"omitempty,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	IsSubscription *bool             `json:"isSubscription"`
	IsActive       *bool             `json:"isActive"`
}

// RecurringRuleResponse defines the data returned for a rule.
type RecurringRuleResponse struct {
	RuleID         string                 `json:"ruleID"`
	Name           string                 `json:"name"`
	Amount         decimal.Decimal        `json:"amount"`
	AccountID      string                 `json:"accountID"`
	CategoryID     *string                `json:"categoryID,omitempty"`
	NextDue        time.Time              `json:"nextDue"`
	Frequency      domain.Frequency       `json:"frequency"`
	IsSubscription bool                   `json:"isSubscription"`
	IsActive       bool                   `json:"isActive"`
	Kind           domain.TransactionKind `json:"kind"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
}

// ToRecurringRuleResponse converts a domain.RecurringRule to a response DTO
func ToRecurringRuleResponse(rule *domain.RecurringRule) RecurringRuleResponse {
	return RecurringRuleResponse{
		RuleID:         rule.RuleID,
		Name:           rule.Name,
		Amount:         rule.Amount,
		AccountID:      rule.AccountID,
		CategoryID:     rule.CategoryID,
		NextDue:        rule.NextDue,
		Frequency:      rule.Frequency,
		IsSubscription: rule.IsSubscription,
		IsActive:       rule.IsActive,
		Kind:           rule.Kind,
		CreatedAt:      rule.CreatedAt,
		LastUpdatedAt:  rule.LastUpdatedAt,
	}
}

// ToListRecurringRuleResponse converts a slice of rules to response DTOs
func ToListRecurringRuleResponse(rules []domain.RecurringRule) []RecurringRuleResponse {
	res := make([]RecurringRuleResponse, len(rules))
	for i, rule := range rules {
		res[i] = ToRecurringRuleResponse(&rule)
	}
	return res
}
