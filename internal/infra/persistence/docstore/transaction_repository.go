package docstore

import (
	"context"
	"time"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

type transactionRepository struct {
	store service.DocumentStore
}

// NewTransactionRepository creates a transaction repository over the document store.
func NewTransactionRepository(store service.DocumentStore) repository.TransactionRepository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, tx *entity.Transaction) error {
	return errors.Wrap(r.store.Put(ctx, service.CollectionTransactions, tx.ID, tx), "save transaction")
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction
	if err := r.store.Get(ctx, service.CollectionTransactions, id, &tx); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "find transaction")
	}

	return &tx, nil
}

func (r *transactionRepository) ListTransactionsByStore(ctx context.Context, storeID string, since time.Time) ([]*entity.Transaction, error) {
	var all []*entity.Transaction
	filter := service.Filter{"store_id": storeID}
	if err := r.store.Query(ctx, service.CollectionTransactions, filter, &all); err != nil {
		return nil, errors.Wrap(err, "list transactions by store")
	}

	if since.IsZero() {
		return all, nil
	}

	// The time window is applied client-side; the store filter contract is
	// top-level equality only.
	matched := make([]*entity.Transaction, 0, len(all))
	for _, tx := range all {
		if !tx.Timestamp.Before(since) {
			matched = append(matched, tx)
		}
	}

	return matched, nil
}
