package impl

import (
	"context"
	"log/slog"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/usecase"
)

// TransactionBuilder validates an incoming order against the catalog and
// constructs the immutable transaction record. It has no side effects;
// persistence is the coordinator's job.
type TransactionBuilder struct {
	catalog *CatalogService
	ids     *txIDGenerator
	clock   *monotonicClock
	logger  *slog.Logger
}

// NewTransactionBuilder creates a builder over the catalog cache.
func NewTransactionBuilder(catalog *CatalogService, logger *slog.Logger) *TransactionBuilder {
	return &TransactionBuilder{
		catalog: catalog,
		ids:     &txIDGenerator{},
		clock:   &monotonicClock{},
		logger:  logger,
	}
}

// Build validates the order and returns the transaction record. The total
// is exact integer minor-unit arithmetic over catalog prices at submission
// time and is never recomputed.
func (b *TransactionBuilder) Build(ctx context.Context, input *usecase.SubmitOrderInput) (*entity.Transaction, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder
	}
	if !input.Channel.IsValid() {
		return nil, domainerrors.ErrUnknownChannel.WithDetails(input.Channel.String())
	}

	if _, ok, err := b.catalog.Store(ctx, input.StoreID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainerrors.ErrUnknownStore.WithDetails(input.StoreID)
	}

	lines := make([]entity.TransactionLine, 0, len(input.Items))
	var total entity.Money
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, domainerrors.ErrInvalidQuantity.WithDetails(line.ItemID)
		}

		item, ok, err := b.catalog.Item(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domainerrors.ErrUnknownItem.WithDetails(line.ItemID)
		}

		lineTotal := item.Price.Mul(line.Quantity)
		lines = append(lines, entity.TransactionLine{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}

	tx := &entity.Transaction{
		ID:         b.ids.Next(),
		CustomerID: input.CustomerID,
		StoreID:    input.StoreID,
		Channel:    input.Channel,
		Lines:      lines,
		Total:      total,
		Timestamp:  b.clock.Now(),
		Status:     entity.StatusCommitted,
	}

	b.logger.Debug("Built transaction",
		slog.String("transaction_id", tx.ID),
		slog.String("customer_id", tx.CustomerID),
		slog.String("total", tx.Total.String()),
	)

	return tx, nil
}
