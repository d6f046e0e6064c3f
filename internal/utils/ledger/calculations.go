package ledger

import (
	"github.com/centsible/centsible_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the contribution of txn to the balance of accountID.
// Income credits the source account, expenses debit it. A transfer debits the
// source and credits the destination; each side is counted only when the
// account being reconciled is on that side. Transactions that do not touch
// the account contribute zero.
//
// This is used in both the balance reconciler and the repository SQL to keep
// the two in agreement.
func SignedAmount(txn domain.Transaction, accountID string) decimal.Decimal {
	switch {
	case txn.AccountID == accountID:
		if txn.Kind == domain.Income {
			return txn.Amount
		}
		return txn.Amount.Neg() // EXPENSE and outgoing TRANSFER both debit
	case txn.Kind == domain.Transfer && txn.DestinationAccountID != nil && *txn.DestinationAccountID == accountID:
		return txn.Amount
	}
	return decimal.Zero
}

// ComputeBalance returns the signed sum of txns over accountID.
// Idempotent: the result depends only on the transaction set.
func ComputeBalance(accountID string, txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(SignedAmount(txn, accountID))
	}
	return sum
}
