package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"hive/config"
	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
	"hive/internal/usecase"
	"hive/internal/util"
)

// defaultRecommendationQuery seeds recommendations for members with no
// recorded favorites.
const defaultRecommendationQuery = "popular bestseller recommended"

// LoyaltyUpdate reports the customer state after a loyalty application.
type LoyaltyUpdate struct {
	CustomerID   string
	PointsEarned int64
	NewBalance   int64
	NewTier      entity.Tier
	TierUpgraded bool
}

// tierBand maps a lifetime-spend floor to the tier it grants. Bands are
// evaluated highest-first.
type tierBand struct {
	MinSpend entity.Money
	Tier     entity.Tier
}

// LoyaltyService is the loyalty accumulator: per-customer serialized spend,
// points and tier updates, idempotent per transaction id. It also serves
// the member-facing reads and redemptions.
type LoyaltyService struct {
	customerRepo repository.CustomerRepository
	catalog      *CatalogService
	store        service.DocumentStore
	cfg          *config.LoyaltyConfig
	logger       *slog.Logger

	bands   []tierBand
	locks   util.KeyedMutex
	applied sync.Map // transaction id -> *LoyaltyUpdate
}

// NewLoyaltyService creates the loyalty accumulator. The conversion rate
// and tier thresholds come from configuration, not call sites.
func NewLoyaltyService(
	customerRepo repository.CustomerRepository,
	catalog *CatalogService,
	store service.DocumentStore,
	cfg *config.Config,
	logger *slog.Logger,
) *LoyaltyService {
	loyaltyCfg := cfg.Loyalty

	return &LoyaltyService{
		customerRepo: customerRepo,
		catalog:      catalog,
		store:        store,
		cfg:          loyaltyCfg,
		logger:       logger,
		bands: []tierBand{
			{MinSpend: entity.MoneyFromMajor(loyaltyCfg.BeeEliteThreshold), Tier: entity.TierBeeElite},
			{MinSpend: entity.MoneyFromMajor(loyaltyCfg.BeeFanThreshold), Tier: entity.TierBeeFan},
			{MinSpend: 0, Tier: entity.TierBeeBuddy},
		},
	}
}

// Quote returns the points a purchase of the given total earns. Pure
// conversion; Apply awards exactly this amount.
func (s *LoyaltyService) Quote(total entity.Money) int64 {
	return total.Major() * s.cfg.PointsPerUnit
}

// tierFor derives the tier from lifetime spend. Pure function; the only
// place tier is computed.
func (s *LoyaltyService) tierFor(spend entity.Money) entity.Tier {
	for _, band := range s.bands {
		if spend >= band.MinSpend {
			return band.Tier
		}
	}

	return entity.TierBeeBuddy
}

// Apply adds the transaction total to the customer's lifetime spend,
// recomputes points and tier, and persists the new state. Reapplying the
// same transaction id is a no-op returning the original update. The tier
// never regresses from a purchase.
func (s *LoyaltyService) Apply(ctx context.Context, tx *entity.Transaction) (*LoyaltyUpdate, error) {
	if prior, ok := s.applied.Load(tx.ID); ok {
		return prior.(*LoyaltyUpdate), nil
	}

	unlock := s.locks.Lock(tx.CustomerID)
	defer unlock()

	// Re-check under the lock; a concurrent retry may have won the race.
	if prior, ok := s.applied.Load(tx.ID); ok {
		return prior.(*LoyaltyUpdate), nil
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, tx.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(tx.CustomerID)
		}

		return nil, err
	}

	oldTier := customer.Tier
	points := tx.Total.Major() * s.cfg.PointsPerUnit

	customer.LifetimeSpend += tx.Total
	customer.Points += points
	customer.TotalOrders++
	customer.LastActivity = tx.Timestamp

	newTier := s.tierFor(customer.LifetimeSpend)
	if newTier.Rank() > oldTier.Rank() {
		customer.Tier = newTier
	}

	// The save stays inside the per-customer lock: concurrent purchases by
	// the same customer must persist in application order or the projection
	// loses an update. Other customers are unaffected.
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}

	update := &LoyaltyUpdate{
		CustomerID:   customer.ID,
		PointsEarned: points,
		NewBalance:   customer.Points,
		NewTier:      customer.Tier,
		TierUpgraded: customer.Tier != oldTier,
	}
	s.applied.Store(tx.ID, update)

	if update.TierUpgraded {
		s.logger.Info("Tier upgraded",
			slog.String("customer_id", customer.ID),
			slog.String("from", oldTier.String()),
			slog.String("to", customer.Tier.String()),
		)
	}

	return update, nil
}

// GetCustomer implements usecase.LoyaltyUsecase.
func (s *LoyaltyService) GetCustomer(ctx context.Context, customerID string) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(customerID)
		}

		return nil, err
	}

	return customer, nil
}

// Redeem implements usecase.LoyaltyUsecase. It deducts points for a reward
// and makes the new balance immediately visible.
func (s *LoyaltyService) Redeem(ctx context.Context, customerID string, input *usecase.RedeemInput) (*usecase.RedeemResult, error) {
	unlock := s.locks.Lock(customerID)
	defer unlock()

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(customerID)
		}

		return nil, err
	}

	if input.Points <= 0 || customer.Points < input.Points {
		return nil, domainerrors.ErrInsufficientPoints
	}

	customer.Points -= input.Points
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.store.Barrier(ctx, service.CollectionCustomers); err != nil {
		return nil, errors.Wrap(err, "redeem visibility barrier")
	}

	s.logger.Info("Points redeemed",
		slog.String("customer_id", customerID),
		slog.Int64("points", input.Points),
		slog.String("item", input.ItemName),
	)

	return &usecase.RedeemResult{
		CustomerID: customerID,
		Redeemed:   input.Points,
		NewBalance: customer.Points,
	}, nil
}

// Recommendations implements usecase.LoyaltyUsecase by ranking the catalog
// against the customer's favorite items.
func (s *LoyaltyService) Recommendations(ctx context.Context, customerID string, limit int) ([]*usecase.RankedMenuItem, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(strings.Join(customer.FavoriteItems, " "))
	if query == "" {
		query = defaultRecommendationQuery
	}

	return s.catalog.Search(ctx, query, limit)
}
