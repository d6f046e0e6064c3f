package dto

import (
	"time"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Description          string                 `json:"description"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	Kind                 domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	OccurredAt           *time.Time             `json:"occurredAt"` // Defaults to now
	AccountID            string                 `json:"accountID" binding:"required"`
	CategoryID           *string                `json:"categoryID"`
	DestinationAccountID *string                `json:"destinationAccountID"` // Required for TRANSFER
}

// UpdateTransactionRequest defines the data allowed when editing a transaction.
// The kind is immutable; delete and recreate to change it.
type UpdateTransactionRequest struct {
	Description          *string          `json:"description"`
	Amount               *decimal.Decimal `json:"amount"`
	OccurredAt           *time.Time       `json:"occurredAt"`
	AccountID            *string          `json:"accountID"`
	CategoryID           *string          `json:"categoryID"`
	DestinationAccountID *string          `json:"destinationAccountID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Description          string                 `json:"description"`
	Amount               decimal.Decimal        `json:"amount"`
	Kind                 domain.TransactionKind `json:"kind"`
	OccurredAt           time.Time              `json:"occurredAt"`
	AccountID            string                 `json:"accountID"`
	CategoryID           *string                `json:"categoryID,omitempty"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Description:          txn.Description,
		Amount:               txn.Amount,
		Kind:                 txn.Kind,
		OccurredAt:           txn.OccurredAt,
		AccountID:            txn.AccountID,
		CategoryID:           txn.CategoryID,
		DestinationAccountID: txn.DestinationAccountID,
		CreatedAt:            txn.CreatedAt,
		LastUpdatedAt:        txn.LastUpdatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=25"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
