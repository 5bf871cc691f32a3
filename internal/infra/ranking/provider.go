package ranking

import (
	"context"
	"log/slog"

	"hive/config"
	"hive/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	providerLexical = "lexical"
	providerHTTP    = "http"
)

// RankerParams holds dependencies for the Ranker, injected by Fx
type RankerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRanker creates a Ranker based on configuration.
func NewRanker(params RankerParams) (service.Ranker, error) {
	cfg := params.Config.Ranking
	logger := params.Logger

	var ranker service.Ranker

	switch cfg.Provider {
	case providerLexical, "":
		logger.Info("Using in-process lexical ranker")
		ranker = NewLexicalRanker(logger)

	case providerHTTP:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for http ranker")
		}
		logger.Info("Using HTTP ranking service",
			slog.String("endpoint", cfg.Endpoint),
		)
		ranker = NewHTTPRanker(cfg.Endpoint, cfg.Timeout, logger)

	default:
		return nil, errors.Errorf("unknown ranking provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing ranker")

			return ranker.Close()
		},
	})

	return ranker, nil
}
