package service

import (
	"context"

	"hive/internal/domain/entity"
)

// RankedItem is one ranking collaborator result.
type RankedItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// Ranker is the semantic ranking collaborator. The core supplies item
// records with precomputed searchable text at catalog load time and treats
// the returned ranking as an opaque oracle.
type Ranker interface {
	// IndexItems hands the enriched catalog to the collaborator. Called once
	// at catalog load and again after out-of-band revisions.
	IndexItems(ctx context.Context, items []*entity.MenuItem) error

	// Rank returns item ids ordered by relevance to the free-text query.
	Rank(ctx context.Context, query string, limit int) ([]RankedItem, error)

	// Close releases any resources held by the ranker client.
	Close() error
}
