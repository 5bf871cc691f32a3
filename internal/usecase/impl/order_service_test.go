package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/usecase"
)

func TestOrderService_Submit_CommitsAllEffects(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items: []usecase.OrderLineInput{
			{ItemID: "chickenjoy1pc", Quantity: 2}, // 164.00
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCommitted, result.Status)
	assert.Equal(t, entity.MoneyFromMajor(164), result.Total)
	assert.Equal(t, int64(164), result.PointsEarned)
	assert.Equal(t, int64(9900+164), result.NewPoints)
	assert.Equal(t, entity.TierBeeElite, result.NewTier) // 9900 + 164 crosses 10000
	assert.Empty(t, result.Warning)

	// Read-your-write: the transaction is queryable as soon as Submit returns.
	transactions, err := env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, result.TransactionID, transactions[0].ID)
	assert.Equal(t, entity.StatusCommitted, transactions[0].Status)
	assert.Equal(t, int64(164), transactions[0].PointsEarned)

	// Store metrics were projected.
	store, err := env.storeRepo.FindStoreByID(env.ctx, "store_001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.OrderCount)
	assert.Equal(t, entity.MoneyFromMajor(164), store.Revenue)

	// Inventory projection is visible too.
	record, err := env.inventoryRepo.FindInventoryRecord(env.ctx, "store_001", "chickenjoy1pc")
	require.NoError(t, err)
	assert.Equal(t, 118, record.Quantity)
}

func TestOrderService_Submit_InsufficientStockCommitsNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelInStore,
		Items:      []usecase.OrderLineInput{{ItemID: "bucket6pc", Quantity: 11}},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domainerrors.ErrInsufficientStock.Message())

	// Nothing was written: no transaction, no loyalty change, no decrement.
	transactions, listErr := env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, listErr)
	assert.Empty(t, transactions)

	customer, getErr := env.loyalty.GetCustomer(env.ctx, "mike001")
	require.NoError(t, getErr)
	assert.Equal(t, int64(9900), customer.Points)

	record, invErr := env.inventoryRepo.FindInventoryRecord(env.ctx, "store_001", "bucket6pc")
	require.NoError(t, invErr)
	assert.Equal(t, 10, record.Quantity)
}

func TestOrderService_Submit_LowStockWarningOnResult(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "anna002",
		StoreID:    "store_001",
		Channel:    entity.ChannelDelivery,
		Items:      []usecase.OrderLineInput{{ItemID: "bucket6pc", Quantity: 6}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCommitted, result.Status)
	assert.Equal(t, []string{"bucket6pc"}, result.LowStockItems)
	require.Len(t, env.publisher.Events(), 1)
}

func TestOrderService_Submit_UnknownCustomerDegrades(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "ghost999",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 1}},
	})
	require.NoError(t, err)

	// The sale stands; the loyalty leg is flagged, never rolled back.
	assert.Equal(t, entity.StatusDegraded, result.Status)
	assert.Contains(t, result.Warning, "loyalty update failed")

	// No points were awarded, so none are reported.
	assert.Zero(t, result.PointsEarned)
	assert.Zero(t, result.NewPoints)
	assert.Empty(t, result.NewTier)

	transactions, listErr := env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, listErr)
	require.Len(t, transactions, 1)
	assert.Equal(t, entity.StatusDegraded, transactions[0].Status)

	// Inventory and store metrics still applied.
	record, invErr := env.inventoryRepo.FindInventoryRecord(env.ctx, "store_001", "yumburger")
	require.NoError(t, invErr)
	assert.Equal(t, 119, record.Quantity)
}

func TestOrderService_SubmitDeferred_InvisibleUntilFlush(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.SubmitDeferred(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 1}},
	})
	require.NoError(t, err)

	transactions, err := env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, transactions)

	require.NoError(t, env.orders.Flush(env.ctx))

	transactions, err = env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestOrderService_Submit_ValidationRejectsBeforeWrites(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: "notonmenu", Quantity: 1}},
	})
	assert.ErrorContains(t, err, domainerrors.ErrUnknownItem.Message())

	transactions, listErr := env.txRepo.ListTransactionsByStore(env.ctx, "store_001", time.Time{})
	require.NoError(t, listErr)
	assert.Empty(t, transactions)
}
