package docstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/service"
)

type testDoc struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Value int    `json:"value"`
}

func newTestStore(t *testing.T) service.DocumentStore {
	t.Helper()

	return NewMemoryStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryStore_GetSeesPendingWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.CollectionCustomers, "c1", &testDoc{ID: "c1", Value: 1}))

	// Point reads observe the write before any barrier.
	var got testDoc
	require.NoError(t, store.Get(ctx, service.CollectionCustomers, "c1", &got))
	assert.Equal(t, 1, got.Value)
}

func TestMemoryStore_QueryRequiresBarrier(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.CollectionTransactions, "t1", &testDoc{ID: "t1", Group: "s1"}))

	var docs []*testDoc
	require.NoError(t, store.Query(ctx, service.CollectionTransactions, nil, &docs))
	assert.Empty(t, docs)

	require.NoError(t, store.Barrier(ctx, service.CollectionTransactions))

	require.NoError(t, store.Query(ctx, service.CollectionTransactions, nil, &docs))
	assert.Len(t, docs, 1)
}

func TestMemoryStore_BarrierScopedToCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.CollectionCustomers, "c1", &testDoc{ID: "c1"}))
	require.NoError(t, store.Put(ctx, service.CollectionStores, "s1", &testDoc{ID: "s1"}))

	require.NoError(t, store.Barrier(ctx, service.CollectionCustomers))

	var customers, stores []*testDoc
	require.NoError(t, store.Query(ctx, service.CollectionCustomers, nil, &customers))
	require.NoError(t, store.Query(ctx, service.CollectionStores, nil, &stores))
	assert.Len(t, customers, 1)
	assert.Empty(t, stores)
}

func TestMemoryStore_PutReplacesPreviousVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.CollectionCustomers, "c1", &testDoc{ID: "c1", Value: 1}))
	require.NoError(t, store.Barrier(ctx, service.CollectionCustomers))
	require.NoError(t, store.Put(ctx, service.CollectionCustomers, "c1", &testDoc{ID: "c1", Value: 2}))

	// The pending version wins point reads immediately.
	var got testDoc
	require.NoError(t, store.Get(ctx, service.CollectionCustomers, "c1", &got))
	assert.Equal(t, 2, got.Value)

	// Queries keep the old version until the next barrier.
	var docs []*testDoc
	require.NoError(t, store.Query(ctx, service.CollectionCustomers, nil, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].Value)

	require.NoError(t, store.Barrier(ctx, service.CollectionCustomers))
	require.NoError(t, store.Query(ctx, service.CollectionCustomers, nil, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Value)
}

func TestMemoryStore_QueryFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.CollectionTransactions, "t1", &testDoc{ID: "t1", Group: "s1"}))
	require.NoError(t, store.Put(ctx, service.CollectionTransactions, "t2", &testDoc{ID: "t2", Group: "s2"}))
	require.NoError(t, store.Put(ctx, service.CollectionTransactions, "t3", &testDoc{ID: "t3", Group: "s1"}))
	require.NoError(t, store.Barrier(ctx, service.CollectionTransactions))

	var docs []*testDoc
	require.NoError(t, store.Query(ctx, service.CollectionTransactions, service.Filter{"group": "s1"}, &docs))
	assert.Len(t, docs, 2)
}

func TestMemoryStore_GetMissingDocument(t *testing.T) {
	store := newTestStore(t)

	var got testDoc
	err := store.Get(context.Background(), service.CollectionCustomers, "nope", &got)
	assert.ErrorIs(t, err, service.ErrDocumentNotFound)
}
