package mapping

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/models"
)

// ToModelRecurringRule converts a domain RecurringRule to a model RecurringRule
func ToModelRecurringRule(d domain.RecurringRule) models.RecurringRule {
	return models.RecurringRule{
		RuleID:         d.RuleID,
		UserID:         d.UserID,
		Name:           d.Name,
		Amount:         d.Amount,
		AccountID:      d.AccountID,
		CategoryID:     d.CategoryID,
		NextDue:        d.NextDue,
		Frequency:      string(d.Frequency),
		IsSubscription: d.IsSubscription,
		IsActive:       d.IsActive,
		Kind:           string(d.Kind),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurringRule converts a model RecurringRule to a domain RecurringRule
func ToDomainRecurringRule(m models.RecurringRule) domain.RecurringRule {
	return domain.RecurringRule{
		RuleID:         m.RuleID,
		UserID:         m.UserID,
		Name:           m.Name,
		Amount:         m.Amount,
		AccountID:      m.AccountID,
		CategoryID:     m.CategoryID,
		NextDue:        m.NextDue,
		Frequency:      domain.Frequency(m.Frequency),
		IsSubscription: m.IsSubscription,
		IsActive:       m.IsActive,
		Kind:           domain.TransactionKind(m.Kind),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecurringRuleSlice converts a slice of model rules to domain rules
func ToDomainRecurringRuleSlice(ms []models.RecurringRule) []domain.RecurringRule {
	ds := make([]domain.RecurringRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecurringRule(m)
	}
	return ds
}
