package mapping

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Month:       d.Month,
		Year:        d.Year,
		Note:        d.Note,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Month:       m.Month,
		Year:        m.Year,
		Note:        m.Note,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudgetCategory converts a domain BudgetCategory to a model BudgetCategory
func ToModelBudgetCategory(d domain.BudgetCategory) models.BudgetCategory {
	return models.BudgetCategory{
		BudgetCategoryID: d.BudgetCategoryID,
		BudgetID:         d.BudgetID,
		CategoryID:       d.CategoryID,
		Planned:          d.Planned,
		ReminderEnabled:  d.ReminderEnabled,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetCategory converts a model BudgetCategory to a domain BudgetCategory
func ToDomainBudgetCategory(m models.BudgetCategory) domain.BudgetCategory {
	return domain.BudgetCategory{
		BudgetCategoryID: m.BudgetCategoryID,
		BudgetID:         m.BudgetID,
		CategoryID:       m.CategoryID,
		Planned:          m.Planned,
		ReminderEnabled:  m.ReminderEnabled,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
