package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/usecase"
)

func submitOrder(t *testing.T, env *testEnv, customerID, storeID, itemID string, qty int, channel entity.Channel) {
	t.Helper()

	_, err := env.orders.Submit(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: customerID,
		StoreID:    storeID,
		Channel:    channel,
		Items:      []usecase.OrderLineInput{{ItemID: itemID, Quantity: qty}},
	})
	require.NoError(t, err)
}

func TestAnalyticsService_StoreAnalytics(t *testing.T) {
	env := newTestEnv(t)

	submitOrder(t, env, "mike001", "store_001", "chickenjoy1pc", 1, entity.ChannelApp)     // 82.00
	submitOrder(t, env, "anna002", "store_001", "yumburger", 2, entity.ChannelInStore)     // 80.00
	submitOrder(t, env, "carlo003", "store_002", "spaghetti", 1, entity.ChannelDelivery)   // 60.00

	report, err := env.analytics.StoreAnalytics(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalStores)
	require.Len(t, report.Stores, 3)

	// Ordered by recent revenue, busiest first.
	top := report.Stores[0]
	assert.Equal(t, "store_001", top.Store.ID)
	assert.Equal(t, 2, top.RecentOrders)
	assert.Equal(t, entity.MoneyFromMajor(162), top.RecentRevenue)
	assert.Equal(t, entity.MoneyFromMajor(81), top.AvgOrderValue)
	assert.Equal(t, 1, top.Channels[entity.ChannelApp.String()])
	assert.Equal(t, 1, top.Channels[entity.ChannelInStore.String()])

	// Rolling denormalized metrics agree with the windowed query.
	assert.Equal(t, int64(2), top.Store.OrderCount)
	assert.Equal(t, entity.MoneyFromMajor(162), top.Store.Revenue)

	idle := report.Stores[2]
	assert.Equal(t, "store_003", idle.Store.ID)
	assert.Zero(t, idle.RecentOrders)
	assert.Zero(t, idle.AvgOrderValue)
}

func TestAnalyticsService_InventoryAnalytics(t *testing.T) {
	env := newTestEnv(t)

	// Drive bucket6pc at store_001 from 10 down to 2: below half the
	// threshold of 5, so Critical.
	submitOrder(t, env, "mike001", "store_001", "bucket6pc", 8, entity.ChannelInStore)

	report, err := env.analytics.InventoryAnalytics(env.ctx, "store_001")
	require.NoError(t, err)

	assert.Equal(t, "store_001", report.StoreID)
	assert.Equal(t, len(report.Items), report.TotalItems)
	assert.Equal(t, 1, report.CriticalItems)
	assert.Zero(t, report.LowItems)

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	assert.Equal(t, "bucket6pc", rec.ItemID)
	assert.Equal(t, "reorder_now", rec.Action)
	assert.Equal(t, 2, rec.CurrentStock)
	assert.Equal(t, entity.StockCritical, rec.Status)
}

func TestAnalyticsService_InventoryAnalytics_UnknownStore(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.analytics.InventoryAnalytics(env.ctx, "store_404")
	assert.ErrorContains(t, err, domainerrors.ErrStoreNotFound.Message())
}
