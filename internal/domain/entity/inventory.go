// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"
)

// StockStatus is the health band of an inventory position relative to its
// reorder threshold.
type StockStatus string

const (
	// StockCritical means quantity is at or below half the reorder threshold.
	StockCritical StockStatus = "Critical"
	// StockLow means quantity is at or below the reorder threshold.
	StockLow StockStatus = "Low"
	// StockAdequate means quantity is at or below twice the reorder threshold.
	StockAdequate StockStatus = "Adequate"
	// StockGood means quantity is comfortably above the reorder threshold.
	StockGood StockStatus = "Good"
)

// InventoryRecord tracks the on-hand quantity of one item at one store.
// Mutated only by the inventory ledger; quantity never goes negative.
type InventoryRecord struct {
	StoreID          string    `json:"store_id"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name"`
	Quantity         int       `json:"quantity"`          // On-hand units, clamped >= 0.
	ReorderThreshold int       `json:"reorder_threshold"` // Low-stock signal fires at or below this level.
	UpdatedAt        time.Time `json:"updated_at"`
}

// InventoryKey builds the stable (store, item) document key.
func InventoryKey(storeID, itemID string) string {
	return fmt.Sprintf("%s:%s", storeID, itemID)
}

// Key returns the record's (store, item) document key.
func (r *InventoryRecord) Key() string {
	return InventoryKey(r.StoreID, r.ItemID)
}

// Status derives the stock health band from the current quantity.
func (r *InventoryRecord) Status() StockStatus {
	switch {
	case r.Quantity*2 <= r.ReorderThreshold:
		return StockCritical
	case r.Quantity <= r.ReorderThreshold:
		return StockLow
	case r.Quantity <= r.ReorderThreshold*2:
		return StockAdequate
	default:
		return StockGood
	}
}
