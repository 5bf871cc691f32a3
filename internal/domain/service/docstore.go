// Package service defines interfaces for outbound collaborators. The core
// depends on these contracts only; concrete clients live under internal/infra.
package service

import (
	"context"

	"hive/internal/errors"
)

// Collection names the five logical document collections the core persists to.
type Collection string

const (
	// CollectionMenuItems holds catalog items keyed by item id.
	CollectionMenuItems Collection = "menu_items"
	// CollectionCustomers holds loyalty members keyed by customer id.
	CollectionCustomers Collection = "customers"
	// CollectionTransactions holds committed sales keyed by transaction id.
	CollectionTransactions Collection = "transactions"
	// CollectionInventory holds stock positions keyed by "storeID:itemID".
	CollectionInventory Collection = "inventory"
	// CollectionStores holds branches keyed by store id.
	CollectionStores Collection = "stores"
)

// String returns the string representation of the Collection.
func (c Collection) String() string {
	return string(c)
}

// AllCollections lists every collection, in barrier order.
func AllCollections() []Collection {
	return []Collection{
		CollectionMenuItems,
		CollectionCustomers,
		CollectionTransactions,
		CollectionInventory,
		CollectionStores,
	}
}

// ErrDocumentNotFound is returned by Get when no document exists under the key.
var ErrDocumentNotFound = errors.New("document not found")

// Filter is an equality filter over top-level document fields. An empty
// filter matches every document in the collection.
type Filter map[string]any

// DocumentStore is the persistence collaborator contract. Its consistency
// model mirrors a near-real-time search store: Put makes a write durable and
// immediately readable by key, but Query observes it only after a Barrier
// covering the collection has returned.
type DocumentStore interface {
	// Put writes a document under the key, replacing any previous version.
	Put(ctx context.Context, collection Collection, key string, record any) error

	// Get reads the document under the key into out. Point reads observe
	// the latest durable write regardless of barriers.
	// Returns ErrDocumentNotFound if no document exists.
	Get(ctx context.Context, collection Collection, key string, out any) error

	// Query decodes every barrier-visible document matching the filter into
	// out, which must be a pointer to a slice.
	Query(ctx context.Context, collection Collection, filter Filter, out any) error

	// Barrier returns only after all prior writes to the named collections
	// are guaranteed visible to subsequent Get and Query calls.
	Barrier(ctx context.Context, collections ...Collection) error

	// Close releases any resources held by the store client.
	Close() error
}
