package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryRecord_StatusBands(t *testing.T) {
	record := &InventoryRecord{ReorderThreshold: 10}

	record.Quantity = 0
	assert.Equal(t, StockCritical, record.Status())

	record.Quantity = 5 // exactly half the threshold
	assert.Equal(t, StockCritical, record.Status())

	record.Quantity = 6
	assert.Equal(t, StockLow, record.Status())

	record.Quantity = 10 // at the threshold
	assert.Equal(t, StockLow, record.Status())

	record.Quantity = 20 // twice the threshold
	assert.Equal(t, StockAdequate, record.Status())

	record.Quantity = 21
	assert.Equal(t, StockGood, record.Status())
}

func TestInventoryKey(t *testing.T) {
	assert.Equal(t, "store_001:bucket6pc", InventoryKey("store_001", "bucket6pc"))

	record := &InventoryRecord{StoreID: "store_002", ItemID: "yumburger"}
	assert.Equal(t, "store_002:yumburger", record.Key())
}
