package impl

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hive/config"
	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/domain/repository"
	"hive/internal/errors"
	"hive/internal/usecase"
)

// ScenarioLunchRush is the built-in synthetic batch: a burst of randomized
// orders from known customers against one store.
const ScenarioLunchRush = "lunch-rush"

// outcomeRejected marks an order the pipeline refused; nothing was written.
const outcomeRejected = "Rejected"

var simulationChannels = []entity.Channel{
	entity.ChannelInStore,
	entity.ChannelApp,
	entity.ChannelDelivery,
}

// SimulationService drives synthetic order batches through the pipeline
// with bounded fan-out. Orders inside a batch skip the per-order visibility
// barrier; one barrier covers the whole batch before the report returns, so
// the report's readers still see every order.
type SimulationService struct {
	orders       usecase.OrderUsecase
	customerRepo repository.CustomerRepository
	catalog      *CatalogService
	cfg          *config.SimulationConfig
	logger       *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSimulationService creates the bulk driver.
func NewSimulationService(
	orders usecase.OrderUsecase,
	customerRepo repository.CustomerRepository,
	catalog *CatalogService,
	cfg *config.Config,
	logger *slog.Logger,
) *SimulationService {
	return &SimulationService{
		orders:       orders,
		customerRepo: customerRepo,
		catalog:      catalog,
		cfg:          cfg.Simulation,
		logger:       logger,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RunBatch implements usecase.SimulationUsecase.
func (s *SimulationService) RunBatch(ctx context.Context, input *usecase.RunBatchInput) (*usecase.BatchReport, error) {
	orders := input.Orders
	if len(orders) == 0 {
		if input.Scenario != "" && input.Scenario != ScenarioLunchRush {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown scenario: " + input.Scenario)
		}

		generated, err := s.generateLunchRush(ctx, input.StoreID, s.cfg.RushOrders)
		if err != nil {
			return nil, err
		}
		orders = generated
	}

	start := time.Now()
	results := make([]*usecase.BatchOutcome, len(orders))

	var group errgroup.Group
	group.SetLimit(s.cfg.FanOut)

	for i, order := range orders {
		group.Go(func() error {
			results[i] = s.runOne(ctx, i, order)

			return nil
		})
	}
	_ = group.Wait()

	// One barrier for the whole batch. After this, every order above is
	// visible to queries.
	if err := s.orders.Flush(ctx); err != nil {
		return nil, errors.Wrap(err, "batch visibility barrier")
	}

	report := &usecase.BatchReport{
		Count:     len(orders),
		ElapsedMs: time.Since(start).Milliseconds(),
		Results:   results,
	}
	for _, outcome := range results {
		switch outcome.Status {
		case string(entity.StatusCommitted):
			report.Committed++
		case string(entity.StatusDegraded):
			report.Degraded++
		default:
			report.Rejected++
		}
	}

	s.logger.Info("Simulation batch finished",
		slog.Int("count", report.Count),
		slog.Int("committed", report.Committed),
		slog.Int("degraded", report.Degraded),
		slog.Int("rejected", report.Rejected),
		slog.Int64("elapsed_ms", report.ElapsedMs),
	)

	return report, nil
}

func (s *SimulationService) runOne(ctx context.Context, index int, order *usecase.SubmitOrderInput) *usecase.BatchOutcome {
	result, err := s.orders.SubmitDeferred(ctx, order)
	if err != nil {
		return &usecase.BatchOutcome{
			Index:  index,
			Status: outcomeRejected,
			Error:  err.Error(),
		}
	}

	return &usecase.BatchOutcome{
		Index:         index,
		TransactionID: result.TransactionID,
		Status:        string(result.Status),
	}
}

// generateLunchRush builds a randomized batch over the known customers and
// the loaded catalog.
func (s *SimulationService) generateLunchRush(ctx context.Context, storeID string, count int) ([]*usecase.SubmitOrderInput, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list customers for simulation")
	}
	if len(customers) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("no customers to simulate")
	}

	items, err := s.catalog.ListMenu(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("catalog is empty")
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	orders := make([]*usecase.SubmitOrderInput, 0, count)
	for i := 0; i < count; i++ {
		lineCount := 1 + s.rng.Intn(3)
		lines := make([]usecase.OrderLineInput, 0, lineCount)
		for j := 0; j < lineCount; j++ {
			item := items[s.rng.Intn(len(items))]
			lines = append(lines, usecase.OrderLineInput{
				ItemID:   item.ID,
				Quantity: 1 + s.rng.Intn(2),
			})
		}

		orders = append(orders, &usecase.SubmitOrderInput{
			CustomerID: customers[s.rng.Intn(len(customers))].ID,
			StoreID:    storeID,
			Channel:    simulationChannels[s.rng.Intn(len(simulationChannels))],
			Items:      lines,
		})
	}

	return orders, nil
}
