// The seed command loads the demo dataset into the configured document
// store and exits. Point it at a shared store before running the API
// against one.
package main

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"hive/config"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/fixture"
	logs "hive/internal/infra/log"
	"hive/internal/infra/persistence/docstore"
	"hive/internal/util"
)

type seedParams struct {
	fx.In

	Ctx           context.Context
	Logger        *slog.Logger
	Shutdowner    fx.Shutdowner
	CatalogRepo   repository.CatalogRepository
	StoreRepo     repository.StoreRepository
	CustomerRepo  repository.CustomerRepository
	InventoryRepo repository.InventoryRepository
	DocStore      service.DocumentStore
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			docstore.NewDocumentStore,
			docstore.NewCatalogRepository,
			docstore.NewCustomerRepository,
			docstore.NewInventoryRepository,
			docstore.NewStoreRepository,
		),
		fx.Invoke(runSeed),
	).Run()
}

func runSeed(params seedParams) error {
	start := time.Now()

	err := fixture.Seed(params.Ctx, fixture.SeedParams{
		Catalog:   params.CatalogRepo,
		Store:     params.StoreRepo,
		Customer:  params.CustomerRepo,
		Inventory: params.InventoryRepo,
		DocStore:  params.DocStore,
	})
	if err != nil {
		params.Logger.Error("Seeding failed", slog.Any("error", err))

		return err
	}

	params.Logger.Info("Demo dataset seeded",
		slog.Int("menu_items", len(fixture.MenuItems())),
		slog.Int("stores", len(fixture.Stores())),
		slog.Int("customers", len(fixture.Customers())),
		slog.Int("inventory_positions", len(fixture.Inventory())),
		slog.String("took", util.FormatDuration(time.Since(start))),
	)

	return params.Shutdowner.Shutdown()
}
