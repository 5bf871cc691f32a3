// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/errors"
)

// Domain-specific errors for store persistence.
var (
	// ErrStoreNotFound is returned when a store is not found.
	ErrStoreNotFound = errors.New("store not found")
)

// StoreRepository defines the persistence operations for branches.
type StoreRepository interface {
	// SaveStore persists a store, replacing any previous version.
	SaveStore(ctx context.Context, store *entity.Store) error

	// FindStoreByID retrieves a store by id.
	// Returns ErrStoreNotFound if the store does not exist.
	FindStoreByID(ctx context.Context, id string) (*entity.Store, error)

	// ListStores retrieves every barrier-visible store.
	ListStores(ctx context.Context) ([]*entity.Store, error)
}
