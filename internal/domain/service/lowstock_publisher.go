package service

import (
	"context"
	"time"
)

// LowStockEvent is raised when a post-decrement inventory position falls at
// or below its reorder threshold. It is an observable side effect of a
// committed order, never an error.
type LowStockEvent struct {
	EventID       string    `json:"event_id"`
	StoreID       string    `json:"store_id"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Threshold     int       `json:"threshold"`
	TransactionID string    `json:"transaction_id"` // Order that triggered the signal.
	OccurredAt    time.Time `json:"occurred_at"`
}

// LowStockPublisher defines the interface for publishing low-stock signals
// to a message queue for out-of-band replenishment workflows.
type LowStockPublisher interface {
	// PublishLowStock publishes a low-stock signal for async processing.
	PublishLowStock(ctx context.Context, event *LowStockEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
