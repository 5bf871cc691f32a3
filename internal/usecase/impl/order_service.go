package impl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"hive/config"
	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
	"hive/internal/usecase"
	"hive/internal/util"
)

// orderCollections are the collections an order touches, in barrier order.
var orderCollections = []service.Collection{
	service.CollectionTransactions,
	service.CollectionCustomers,
	service.CollectionInventory,
	service.CollectionStores,
}

// OrderService coordinates the order pipeline: build, reserve stock,
// persist the sale, fan out the downstream effects, then hold the response
// until a visibility barrier covers every touched collection. The barrier
// is what turns "durable" into "readable": a caller querying any collection
// after Submit returns observes this order.
type OrderService struct {
	builder   *TransactionBuilder
	inventory *InventoryService
	loyalty   *LoyaltyService
	txRepo    repository.TransactionRepository
	storeRepo repository.StoreRepository
	store     service.DocumentStore
	cfg       *config.SubmitConfig
	logger    *slog.Logger

	storeLocks util.KeyedMutex
	projected  sync.Map // transaction id -> struct{}; store metrics applied
}

// NewOrderService wires the pipeline components.
func NewOrderService(
	builder *TransactionBuilder,
	inventory *InventoryService,
	loyalty *LoyaltyService,
	txRepo repository.TransactionRepository,
	storeRepo repository.StoreRepository,
	store service.DocumentStore,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		builder:   builder,
		inventory: inventory,
		loyalty:   loyalty,
		txRepo:    txRepo,
		storeRepo: storeRepo,
		store:     store,
		cfg:       cfg.Submit,
		logger:    logger,
	}
}

// Submit implements usecase.OrderUsecase.
func (s *OrderService) Submit(ctx context.Context, input *usecase.SubmitOrderInput) (*usecase.OrderResult, error) {
	return s.submit(ctx, input, true)
}

// SubmitDeferred implements usecase.OrderUsecase.
func (s *OrderService) SubmitDeferred(ctx context.Context, input *usecase.SubmitOrderInput) (*usecase.OrderResult, error) {
	return s.submit(ctx, input, false)
}

// Flush implements usecase.OrderUsecase.
func (s *OrderService) Flush(ctx context.Context) error {
	if err := s.store.Barrier(ctx, orderCollections...); err != nil {
		return errors.Wrap(err, "visibility barrier")
	}

	return nil
}

func (s *OrderService) submit(ctx context.Context, input *usecase.SubmitOrderInput, barrier bool) (*usecase.OrderResult, error) {
	// Validation and pricing. Failures here reject the order before any
	// state is touched.
	tx, err := s.builder.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	tx.PointsEarned = s.loyalty.Quote(tx.Total)

	// Stock is taken before the sale is durable: an order the store cannot
	// fill must leave no trace. The reservation is compensated if the
	// persist below fails.
	resv, err := s.inventory.Reserve(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := s.withRetry(ctx, func(stepCtx context.Context) error {
		return s.txRepo.SaveTransaction(stepCtx, tx)
	}); err != nil {
		s.inventory.Release(resv)

		return nil, domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	// The sale is committed. Downstream effects run concurrently and are
	// independent: one failing degrades the order but never rolls it back
	// and never stops the others.
	var (
		update     *LoyaltyUpdate
		loyaltyErr error
		stockErr   error
		metricsErr error
	)

	var group errgroup.Group
	group.Go(func() error {
		update, loyaltyErr = s.applyLoyalty(ctx, tx)

		return nil
	})
	group.Go(func() error {
		stockErr = s.withRetry(ctx, func(stepCtx context.Context) error {
			return s.inventory.Commit(stepCtx, resv)
		})

		return nil
	})
	group.Go(func() error {
		metricsErr = s.withRetry(ctx, func(stepCtx context.Context) error {
			return s.projectStoreMetrics(stepCtx, tx)
		})

		return nil
	})
	_ = group.Wait()

	result := &usecase.OrderResult{
		TransactionID: tx.ID,
		Status:        entity.StatusCommitted,
		Total:         tx.Total,
		LowStockItems: resv.LowStockItems(),
	}
	// Points are reported only when the loyalty leg actually awarded them.
	// A degraded order whose loyalty update failed earned nothing, even
	// though the persisted sale carries the quote.
	if update != nil {
		result.PointsEarned = update.PointsEarned
		result.NewPoints = update.NewBalance
		result.NewTier = update.NewTier
	}

	if warning := firstWarning(loyaltyErr, stockErr, metricsErr); warning != "" {
		result.Status = entity.StatusDegraded
		result.Warning = warning
		s.markDegraded(ctx, tx)
	}

	if barrier {
		if err := s.Flush(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Order processed",
		slog.String("transaction_id", tx.ID),
		slog.String("customer_id", tx.CustomerID),
		slog.String("store_id", tx.StoreID),
		slog.String("status", string(result.Status)),
		slog.String("total", tx.Total.String()),
	)

	return result, nil
}

func (s *OrderService) applyLoyalty(ctx context.Context, tx *entity.Transaction) (*LoyaltyUpdate, error) {
	var update *LoyaltyUpdate
	err := s.withRetry(ctx, func(stepCtx context.Context) error {
		var applyErr error
		update, applyErr = s.loyalty.Apply(stepCtx, tx)

		return applyErr
	})

	return update, err
}

// projectStoreMetrics folds the sale into the store's denormalized rolling
// metrics. Idempotent per transaction so a step retry never double-counts.
func (s *OrderService) projectStoreMetrics(ctx context.Context, tx *entity.Transaction) error {
	if _, done := s.projected.Load(tx.ID); done {
		return nil
	}

	unlock := s.storeLocks.Lock(tx.StoreID)
	defer unlock()

	if _, done := s.projected.Load(tx.ID); done {
		return nil
	}

	store, err := s.storeRepo.FindStoreByID(ctx, tx.StoreID)
	if err != nil {
		return errors.Wrapf(err, "load store %s", tx.StoreID)
	}

	store.OrderCount++
	store.Revenue += tx.Total
	store.UpdatedAt = tx.Timestamp

	if err := s.storeRepo.SaveStore(ctx, store); err != nil {
		return errors.Wrapf(err, "project store metrics %s", tx.StoreID)
	}

	s.projected.Store(tx.ID, struct{}{})

	return nil
}

// markDegraded records the Committed -> Degraded transition, the only
// mutation a persisted transaction ever receives. Best effort: the degraded
// response already carries the warning.
func (s *OrderService) markDegraded(ctx context.Context, tx *entity.Transaction) {
	tx.Status = entity.StatusDegraded
	if err := s.withRetry(ctx, func(stepCtx context.Context) error {
		return s.txRepo.SaveTransaction(stepCtx, tx)
	}); err != nil {
		s.logger.Error("Failed to flag degraded transaction",
			slog.String("transaction_id", tx.ID),
			slog.Any("error", err),
		)
	}
}

// withRetry runs one pipeline step under the configured timeout, retrying
// transient failures with exponential backoff. Business errors are
// permanent and surface immediately.
func (s *OrderService) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.RetryInitialInterval
	policy.MaxElapsedTime = s.cfg.RetryMaxElapsed

	return backoff.Retry(func() error {
		stepCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
		defer cancel()

		err := op(stepCtx)
		if err == nil {
			return nil
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(policy, ctx))
}

func firstWarning(loyaltyErr, stockErr, metricsErr error) string {
	switch {
	case loyaltyErr != nil:
		return "loyalty update failed: " + loyaltyErr.Error()
	case stockErr != nil:
		return "inventory projection failed: " + stockErr.Error()
	case metricsErr != nil:
		return "store metrics update failed: " + metricsErr.Error()
	default:
		return ""
	}
}
