package services

import (
	"context"

	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/centsible/centsible_backend/internal/dto"
)

type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}
