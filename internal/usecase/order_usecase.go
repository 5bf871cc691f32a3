// Package usecase defines the application-layer interfaces and their
// input/output types. Implementations live in usecase/impl.
package usecase

import (
	"context"

	"hive/internal/domain/entity"
)

// OrderLineInput is one requested line of an order.
type OrderLineInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// SubmitOrderInput represents one incoming point-of-sale order.
type SubmitOrderInput struct {
	CustomerID string           `json:"customer_id"`
	StoreID    string           `json:"store_id"`
	Channel    entity.Channel   `json:"channel"`
	Items      []OrderLineInput `json:"items"`
}

// OrderResult reports the outcome of a submitted order. Status is Committed
// when every effect applied, Degraded when the sale was recorded but a
// downstream update failed; Warning names the failed sub-update.
type OrderResult struct {
	TransactionID string                   `json:"transaction_id"`
	Status        entity.TransactionStatus `json:"status"`
	Total         entity.Money             `json:"total"`
	PointsEarned  int64                    `json:"points_earned"`
	NewPoints     int64                    `json:"new_points"`
	NewTier       entity.Tier              `json:"new_tier"`
	LowStockItems []string                 `json:"low_stock_items"`
	Warning       string                   `json:"warning,omitempty"`
}

// OrderUsecase is the single entry point for order submission. Both the API
// handler and the bulk simulation driver go through it.
type OrderUsecase interface {
	// Submit runs the full pipeline: build, reserve inventory, persist,
	// apply loyalty, project store metrics, then issue the visibility
	// barrier. A caller reading any touched collection after Submit
	// returns observes this order's effects.
	Submit(ctx context.Context, input *SubmitOrderInput) (*OrderResult, error)

	// SubmitDeferred runs the same pipeline without the per-order barrier.
	// Used by the bulk driver, which issues one barrier per batch.
	SubmitDeferred(ctx context.Context, input *SubmitOrderInput) (*OrderResult, error)

	// Flush issues a visibility barrier over every collection touched by
	// order processing. Pairs with SubmitDeferred.
	Flush(ctx context.Context) error
}
