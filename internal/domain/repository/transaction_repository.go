// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"hive/internal/domain/entity"
	"hive/internal/errors"
)

// Domain-specific errors for transaction persistence.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionRepository defines the persistence operations for committed
// sales records. Transactions are append-only; the only update ever issued
// is the Committed -> Degraded status transition.
type TransactionRepository interface {
	// SaveTransaction persists a transaction under its id.
	SaveTransaction(ctx context.Context, tx *entity.Transaction) error

	// FindTransactionByID retrieves a transaction by id.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	FindTransactionByID(ctx context.Context, id string) (*entity.Transaction, error)

	// ListTransactionsByStore retrieves barrier-visible transactions for a
	// store newer than since. A zero since returns all of them.
	ListTransactionsByStore(ctx context.Context, storeID string, since time.Time) ([]*entity.Transaction, error)
}
