package usecase

import (
	"context"

	"hive/internal/domain/entity"
)

// RankedMenuItem is a menu item paired with its collaborator relevance score.
type RankedMenuItem struct {
	Item  *entity.MenuItem `json:"item"`
	Score float64          `json:"score"`
}

// CatalogUsecase exposes the read-mostly catalog: menu listing and free-text
// search delegated to the ranking collaborator.
type CatalogUsecase interface {
	// ListMenu returns every catalog item.
	ListMenu(ctx context.Context) ([]*entity.MenuItem, error)

	// Search returns catalog items ranked against the free-text query.
	Search(ctx context.Context, query string, limit int) ([]*RankedMenuItem, error)
}
