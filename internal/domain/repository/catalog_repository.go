// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"hive/internal/domain/entity"
	"hive/internal/errors"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrMenuItemNotFound is returned when a menu item is not found.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// CatalogRepository defines the persistence operations for menu items.
type CatalogRepository interface {
	// SaveMenuItem persists a menu item, replacing any previous version.
	SaveMenuItem(ctx context.Context, item *entity.MenuItem) error

	// FindMenuItemByID retrieves a menu item by its catalog id.
	// Returns ErrMenuItemNotFound if the item does not exist.
	FindMenuItemByID(ctx context.Context, id string) (*entity.MenuItem, error)

	// ListMenuItems retrieves every barrier-visible menu item.
	ListMenuItems(ctx context.Context) ([]*entity.MenuItem, error)
}
