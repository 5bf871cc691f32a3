package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"hive/config"
	"hive/internal/delivery"
	"hive/internal/delivery/http"
	"hive/internal/delivery/http/middleware"
	"hive/internal/delivery/http/router/handler"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/fixture"
	logs "hive/internal/infra/log"
	"hive/internal/infra/persistence/docstore"
	"hive/internal/infra/pubsub"
	"hive/internal/infra/ranking"
	"hive/internal/usecase"
	"hive/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			prepareCatalog,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		docstore.NewDocumentStore,
		ranking.NewRanker,
		pubsub.NewLowStockPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			docstore.NewCatalogRepository,
			docstore.NewCustomerRepository,
			docstore.NewTransactionRepository,
			docstore.NewInventoryRepository,
			docstore.NewStoreRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewTransactionBuilder,
			impl.NewInventoryService,
			impl.NewLoyaltyService,
			impl.NewOrderService,
			impl.NewSimulationService,
			impl.NewAnalyticsService,
			func(s *impl.CatalogService) usecase.CatalogUsecase { return s },
			func(s *impl.LoyaltyService) usecase.LoyaltyUsecase { return s },
			func(s *impl.OrderService) usecase.OrderUsecase { return s },
			func(s *impl.SimulationService) usecase.SimulationUsecase { return s },
			func(s *impl.AnalyticsService) usecase.AnalyticsUsecase { return s },
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOrderHandler,
			handler.NewSimulationHandler,
			handler.NewCatalogHandler,
			handler.NewLoyaltyHandler,
			handler.NewAnalyticsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

type prepareCatalogParams struct {
	fx.In

	Ctx           context.Context
	Logger        *slog.Logger
	Catalog       *impl.CatalogService
	CatalogRepo   repository.CatalogRepository
	StoreRepo     repository.StoreRepository
	CustomerRepo  repository.CustomerRepository
	InventoryRepo repository.InventoryRepository
	DocStore      service.DocumentStore
}

// prepareCatalog seeds an empty document store with the demo dataset and
// warms the catalog cache before the server accepts orders.
func prepareCatalog(params prepareCatalogParams) error {
	items, err := params.CatalogRepo.ListMenuItems(params.Ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		params.Logger.Info("Empty document store, seeding demo dataset")
		if err := fixture.Seed(params.Ctx, fixture.SeedParams{
			Catalog:   params.CatalogRepo,
			Store:     params.StoreRepo,
			Customer:  params.CustomerRepo,
			Inventory: params.InventoryRepo,
			DocStore:  params.DocStore,
		}); err != nil {
			return err
		}
	}

	return params.Catalog.Load(params.Ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
