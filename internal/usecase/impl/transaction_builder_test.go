package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/usecase"
)

func TestTransactionBuilder_Build_ComputesExactTotals(t *testing.T) {
	env := newTestEnv(t)

	tx, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items: []usecase.OrderLineInput{
			{ItemID: "chickenjoy1pc", Quantity: 2}, // 82.00 each
			{ItemID: "peachmangopie", Quantity: 1}, // 48.00
		},
	})
	require.NoError(t, err)

	assert.Len(t, tx.Lines, 2)
	assert.Equal(t, entity.MoneyFromMajor(164), tx.Lines[0].LineTotal)
	assert.Equal(t, entity.MoneyFromMajor(212), tx.Total)
	assert.Equal(t, entity.StatusCommitted, tx.Status)
	assert.Equal(t, "Chickenjoy (1 pc)", tx.Lines[0].ItemName)
}

func TestTransactionBuilder_Build_EmptyOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
	})
	assert.ErrorContains(t, err, domainerrors.ErrEmptyOrder.Message())
}

func TestTransactionBuilder_Build_UnknownItem(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelInStore,
		Items:      []usecase.OrderLineInput{{ItemID: "haloremovedhalo", Quantity: 1}},
	})
	assert.ErrorContains(t, err, domainerrors.ErrUnknownItem.Message())
}

func TestTransactionBuilder_Build_InvalidQuantity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelInStore,
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 0}},
	})
	assert.ErrorContains(t, err, domainerrors.ErrInvalidQuantity.Message())
}

func TestTransactionBuilder_Build_UnknownChannelAndStore(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.Channel("drone"),
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 1}},
	})
	assert.ErrorContains(t, err, domainerrors.ErrUnknownChannel.Message())

	_, err = env.builder.Build(env.ctx, &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_999",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 1}},
	})
	assert.ErrorContains(t, err, domainerrors.ErrUnknownStore.Message())
}

func TestTransactionBuilder_Build_IDsFollowCreationOrder(t *testing.T) {
	env := newTestEnv(t)

	input := &usecase.SubmitOrderInput{
		CustomerID: "mike001",
		StoreID:    "store_001",
		Channel:    entity.ChannelApp,
		Items:      []usecase.OrderLineInput{{ItemID: "yumburger", Quantity: 1}},
	}

	first, err := env.builder.Build(env.ctx, input)
	require.NoError(t, err)
	second, err := env.builder.Build(env.ctx, input)
	require.NoError(t, err)

	assert.Less(t, first.ID, second.ID)
	assert.False(t, second.Timestamp.Before(first.Timestamp))
}
