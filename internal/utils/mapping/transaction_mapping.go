package mapping

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		UserID:               d.UserID,
		Description:          d.Description,
		Amount:               d.Amount,
		Kind:                 string(d.Kind),
		OccurredAt:           d.OccurredAt,
		AccountID:            d.AccountID,
		CategoryID:           d.CategoryID,
		DestinationAccountID: d.DestinationAccountID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		UserID:               m.UserID,
		Description:          m.Description,
		Amount:               m.Amount,
		Kind:                 domain.TransactionKind(m.Kind),
		OccurredAt:           m.OccurredAt,
		AccountID:            m.AccountID,
		CategoryID:           m.CategoryID,
		DestinationAccountID: m.DestinationAccountID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
