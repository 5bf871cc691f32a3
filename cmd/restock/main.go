// The restock worker consumes low-stock Pub/Sub push deliveries and applies
// replenishment to the inventory projection. It runs as its own process so
// replenishment load never competes with order traffic.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"hive/config"
	"hive/internal/delivery"
	"hive/internal/delivery/worker"
	"hive/internal/delivery/worker/handler"
	logs "hive/internal/infra/log"
	"hive/internal/infra/persistence/docstore"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
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
		docstore.NewInventoryRepository,
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRestockHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
