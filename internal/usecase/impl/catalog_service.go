// Package impl contains the application services behind the usecase
// interfaces: the catalog cache, the order pipeline components and the
// bulk simulation driver.
package impl

import (
	"context"
	"log/slog"
	"sync"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
	"hive/internal/usecase"
)

// CatalogService is the read-mostly catalog cache: menu items, stores and
// their enriched searchable text. It is the leaf dependency for pricing and
// validation, and it feeds the enriched catalog to the ranking collaborator.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	storeRepo   repository.StoreRepository
	ranker      service.Ranker
	logger      *slog.Logger
	rules       []EnrichmentRule

	mu     sync.RWMutex
	items  map[string]*entity.MenuItem
	stores map[string]*entity.Store
	loaded bool
}

// NewCatalogService creates the catalog cache. Call Load before serving
// orders; lookups on an unloaded catalog trigger a lazy load.
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	storeRepo repository.StoreRepository,
	ranker service.Ranker,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		storeRepo:   storeRepo,
		ranker:      ranker,
		logger:      logger,
		rules:       defaultEnrichmentRules(),
		items:       make(map[string]*entity.MenuItem),
		stores:      make(map[string]*entity.Store),
	}
}

// Load reads menu items and stores from persistence, applies the enrichment
// rule set and hands the enriched catalog to the ranking collaborator.
func (s *CatalogService) Load(ctx context.Context) error {
	items, err := s.catalogRepo.ListMenuItems(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu items")
	}

	stores, err := s.storeRepo.ListStores(ctx)
	if err != nil {
		return errors.Wrap(err, "load stores")
	}

	itemIndex := make(map[string]*entity.MenuItem, len(items))
	for _, item := range items {
		applyEnrichment(item, s.rules)
		itemIndex[item.ID] = item
	}

	storeIndex := make(map[string]*entity.Store, len(stores))
	for _, store := range stores {
		storeIndex[store.ID] = store
	}

	if err := s.ranker.IndexItems(ctx, items); err != nil {
		return errors.Wrap(err, "index catalog into ranker")
	}

	s.mu.Lock()
	s.items = itemIndex
	s.stores = storeIndex
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Catalog loaded",
		slog.Int("menu_items", len(items)),
		slog.Int("stores", len(stores)),
	)

	return nil
}

func (s *CatalogService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}

	return s.Load(ctx)
}

// Item returns the catalog item by id, or false when it is unknown.
func (s *CatalogService) Item(ctx context.Context, id string) (*entity.MenuItem, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]

	return item, ok, nil
}

// Store returns the branch by id, or false when it is unknown.
func (s *CatalogService) Store(ctx context.Context, id string) (*entity.Store, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[id]

	return store, ok, nil
}

// ListMenu implements usecase.CatalogUsecase.
func (s *CatalogService) ListMenu(ctx context.Context) ([]*entity.MenuItem, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*entity.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	return items, nil
}

// Search implements usecase.CatalogUsecase by delegating to the ranking
// collaborator and resolving returned ids against the cache.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]*usecase.RankedMenuItem, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	ranked, err := s.ranker.Rank(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "rank menu query")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*usecase.RankedMenuItem, 0, len(ranked))
	for _, hit := range ranked {
		item, ok := s.items[hit.ItemID]
		if !ok {
			// The collaborator may lag behind catalog revisions; stale ids
			// are skipped rather than surfaced.
			continue
		}
		results = append(results, &usecase.RankedMenuItem{Item: item, Score: hit.Score})
	}

	return results, nil
}
