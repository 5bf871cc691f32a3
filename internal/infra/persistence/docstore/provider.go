package docstore

import (
	"context"
	"log/slog"

	"hive/config"
	"hive/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	providerMemory = "memory"
	providerHTTP   = "http"
)

// StoreParams holds dependencies for the DocumentStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewDocumentStore creates a DocumentStore based on configuration.
func NewDocumentStore(params StoreParams) (service.DocumentStore, error) {
	cfg := params.Config.DocStore
	logger := params.Logger

	var store service.DocumentStore

	switch cfg.Provider {
	case providerMemory, "":
		logger.Info("Using in-memory document store")
		store = NewMemoryStore(logger)

	case providerHTTP:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for http document store")
		}
		logger.Info("Using HTTP document store",
			slog.String("endpoint", cfg.Endpoint),
		)
		store = NewHTTPStore(cfg.Endpoint, cfg.APIKey, cfg.Timeout, logger)

	default:
		return nil, errors.Errorf("unknown docstore provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing document store")

			return store.Close()
		},
	})

	return store, nil
}
