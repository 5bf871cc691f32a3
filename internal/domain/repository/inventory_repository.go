// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/errors"
)

// Domain-specific errors for inventory persistence.
var (
	// ErrInventoryNotFound is returned when an inventory record is not found.
	ErrInventoryNotFound = errors.New("inventory record not found")
)

// InventoryRepository defines the persistence operations for stock positions.
// Writes are projections of the in-process ledger state; the ledger itself
// is the serialization point for concurrent decrements.
type InventoryRepository interface {
	// SaveInventoryRecord persists a stock position under its (store, item) key.
	SaveInventoryRecord(ctx context.Context, record *entity.InventoryRecord) error

	// FindInventoryRecord retrieves the stock position for (storeID, itemID).
	// Returns ErrInventoryNotFound if no position exists.
	FindInventoryRecord(ctx context.Context, storeID, itemID string) (*entity.InventoryRecord, error)

	// ListInventoryByStore retrieves every barrier-visible stock position of a store.
	ListInventoryByStore(ctx context.Context, storeID string) ([]*entity.InventoryRecord, error)
}
