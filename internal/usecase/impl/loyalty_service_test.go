package impl

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/usecase"
)

func buildOrder(t *testing.T, env *testEnv, customerID, itemID string, qty int) *entity.Transaction {
	t.Helper()

	tx, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: customerID,
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: itemID, Quantity: qty}},
	})
	require.NoError(t, err)

	return tx
}

func TestLoyaltyService_Apply_AwardsPointsAndSpend(t *testing.T) {
	env := newTestEnv(t)

	tx := buildOrder(t, env, "anna002", "chickenjoy1pc", 1) // 82.00

	update, err := env.loyalty.Apply(env.ctx, tx)
	require.NoError(t, err)

	assert.Equal(t, int64(82), update.PointsEarned)
	assert.Equal(t, int64(450+82), update.NewBalance)
	assert.Equal(t, entity.TierBeeBuddy, update.NewTier)
	assert.False(t, update.TierUpgraded)

	customer, err := env.loyalty.GetCustomer(env.ctx, "anna002")
	require.NoError(t, err)
	assert.Equal(t, entity.MoneyFromMajor(450+82), customer.LifetimeSpend)
	assert.Equal(t, 8, customer.TotalOrders)
	assert.Equal(t, tx.Timestamp, customer.LastActivity)
}

func TestLoyaltyService_Apply_TierUpgradeAtThreshold(t *testing.T) {
	env := newTestEnv(t)

	// mike001 sits at 9900 lifetime spend; 164.00 crosses the 10000 line.
	tx := buildOrder(t, env, "mike001", "chickenjoy1pc", 2)

	update, err := env.loyalty.Apply(env.ctx, tx)
	require.NoError(t, err)

	assert.True(t, update.TierUpgraded)
	assert.Equal(t, entity.TierBeeElite, update.NewTier)

	customer, err := env.loyalty.GetCustomer(env.ctx, "mike001")
	require.NoError(t, err)
	assert.Equal(t, entity.TierBeeElite, customer.Tier)
}

func TestLoyaltyService_Apply_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	tx := buildOrder(t, env, "anna002", "yumburger", 1)

	first, err := env.loyalty.Apply(env.ctx, tx)
	require.NoError(t, err)
	second, err := env.loyalty.Apply(env.ctx, tx)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	customer, err := env.loyalty.GetCustomer(env.ctx, "anna002")
	require.NoError(t, err)
	assert.Equal(t, int64(450+40), customer.Points)
}

func TestLoyaltyService_Apply_ConcurrentOrdersLoseNothing(t *testing.T) {
	env := newTestEnv(t)

	const orders = 20
	transactions := make([]*entity.Transaction, orders)
	for i := range transactions {
		transactions[i] = buildOrder(t, env, "anna002", "yumburger", 1)
	}

	var wg sync.WaitGroup
	for _, tx := range transactions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.loyalty.Apply(env.ctx, tx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	customer, err := env.loyalty.GetCustomer(env.ctx, "anna002")
	require.NoError(t, err)
	assert.Equal(t, int64(450+orders*40), customer.Points)
	assert.Equal(t, entity.MoneyFromMajor(450+orders*40), customer.LifetimeSpend)
	assert.Equal(t, 7+orders, customer.TotalOrders)
}

func TestLoyaltyService_Apply_TierNeverRegresses(t *testing.T) {
	env := newTestEnv(t)

	// carlo003 is already BeeElite; a small order must not demote him.
	tx := buildOrder(t, env, "carlo003", "yumburger", 1)

	update, err := env.loyalty.Apply(env.ctx, tx)
	require.NoError(t, err)

	assert.Equal(t, entity.TierBeeElite, update.NewTier)
	assert.False(t, update.TierUpgraded)
}

func TestLoyaltyService_Apply_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	tx := buildOrder(t, env, "ghost999", "yumburger", 1)

	_, err := env.loyalty.Apply(env.ctx, tx)
	assert.ErrorContains(t, err, domainerrors.ErrCustomerNotFound.Message())
}

func TestLoyaltyService_Redeem(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.loyalty.Redeem(env.ctx, "anna002", &usecase.RedeemInput{
		Points:   200,
		ItemName: "Peach Mango Pie",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200), result.Redeemed)
	assert.Equal(t, int64(250), result.NewBalance)

	// Lifetime spend and tier are untouched by redemption.
	customer, err := env.loyalty.GetCustomer(env.ctx, "anna002")
	require.NoError(t, err)
	assert.Equal(t, entity.MoneyFromMajor(450), customer.LifetimeSpend)
	assert.Equal(t, entity.TierBeeBuddy, customer.Tier)
}

func TestLoyaltyService_Redeem_InsufficientPoints(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.loyalty.Redeem(env.ctx, "anna002", &usecase.RedeemInput{Points: 10_000})
	assert.ErrorContains(t, err, domainerrors.ErrInsufficientPoints.Message())

	_, err = env.loyalty.Redeem(env.ctx, "anna002", &usecase.RedeemInput{Points: -5})
	assert.ErrorContains(t, err, domainerrors.ErrInsufficientPoints.Message())
}

func TestLoyaltyService_Recommendations_FavoritesFirst(t *testing.T) {
	env := newTestEnv(t)

	results, err := env.loyalty.Recommendations(env.ctx, "mike001", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// mike001's favorites are chickenjoy and spaghetti.
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Item.ID)
	}
	assert.Contains(t, ids, "chickenjoy1pc")
}

func TestLoyaltyService_Recommendations_FallbackForNewMembers(t *testing.T) {
	env := newTestEnv(t)

	results, err := env.loyalty.Recommendations(env.ctx, "newbie004", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Fallback surfaces bestsellers via their enrichment terms.
	assert.True(t, results[0].Item.IsBestseller)
}
