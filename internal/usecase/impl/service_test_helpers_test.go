package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"hive/config"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/fixture"
	"hive/internal/infra/persistence/docstore"
	"hive/internal/infra/ranking"
)

// capturePublisher records published low-stock events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []*service.LowStockEvent
}

func (p *capturePublisher) PublishLowStock(ctx context.Context, event *service.LowStockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) Events() []*service.LowStockEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.LowStockEvent(nil), p.events...)
}

// testEnv wires the full pipeline over the in-process document store,
// seeded with the demo dataset.
type testEnv struct {
	ctx context.Context
	cfg *config.Config

	store         service.DocumentStore
	publisher     *capturePublisher
	catalogRepo   repository.CatalogRepository
	customerRepo  repository.CustomerRepository
	txRepo        repository.TransactionRepository
	inventoryRepo repository.InventoryRepository
	storeRepo     repository.StoreRepository

	catalog    *CatalogService
	builder    *TransactionBuilder
	inventory  *InventoryService
	loyalty    *LoyaltyService
	orders     *OrderService
	simulation *SimulationService
	analytics  *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	store := docstore.NewMemoryStore(logger)
	catalogRepo := docstore.NewCatalogRepository(store)
	customerRepo := docstore.NewCustomerRepository(store)
	txRepo := docstore.NewTransactionRepository(store)
	inventoryRepo := docstore.NewInventoryRepository(store)
	storeRepo := docstore.NewStoreRepository(store)

	ctx := context.Background()
	require.NoError(t, fixture.Seed(ctx, fixture.SeedParams{
		Catalog:   catalogRepo,
		Store:     storeRepo,
		Customer:  customerRepo,
		Inventory: inventoryRepo,
		DocStore:  store,
	}))

	catalog := NewCatalogService(catalogRepo, storeRepo, ranking.NewLexicalRanker(logger), logger)
	require.NoError(t, catalog.Load(ctx))

	publisher := &capturePublisher{}
	inventory := NewInventoryService(inventoryRepo, publisher, logger)
	loyalty := NewLoyaltyService(customerRepo, catalog, store, cfg, logger)
	builder := NewTransactionBuilder(catalog, logger)
	orders := NewOrderService(builder, inventory, loyalty, txRepo, storeRepo, store, cfg, logger)
	simulation := NewSimulationService(orders, customerRepo, catalog, cfg, logger)
	analytics := NewAnalyticsService(storeRepo, txRepo, inventoryRepo, logger)

	return &testEnv{
		ctx:           ctx,
		cfg:           cfg,
		store:         store,
		publisher:     publisher,
		catalogRepo:   catalogRepo,
		customerRepo:  customerRepo,
		txRepo:        txRepo,
		inventoryRepo: inventoryRepo,
		storeRepo:     storeRepo,
		catalog:       catalog,
		builder:       builder,
		inventory:     inventory,
		loyalty:       loyalty,
		orders:        orders,
		simulation:    simulation,
		analytics:     analytics,
	}
}
