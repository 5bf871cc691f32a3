package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/domain/repository"
	"hive/internal/errors"
	"hive/internal/usecase"
)

// recentWindow bounds the activity slice of the store dashboard.
const recentWindow = 24 * time.Hour

// Replenishment actions attached to reorder recommendations.
const (
	actionReorderNow  = "reorder_now"
	actionReorderSoon = "reorder_soon"
)

// AnalyticsService builds the dashboard reports. It reads barrier-visible
// state only: rolling store metrics come off the denormalized store records
// and the recent-activity slice comes from a windowed transaction query, so
// no report ever scans the full transaction history.
type AnalyticsService struct {
	storeRepo     repository.StoreRepository
	txRepo        repository.TransactionRepository
	inventoryRepo repository.InventoryRepository
	logger        *slog.Logger
}

// NewAnalyticsService creates the dashboard reader.
func NewAnalyticsService(
	storeRepo repository.StoreRepository,
	txRepo repository.TransactionRepository,
	inventoryRepo repository.InventoryRepository,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		storeRepo:     storeRepo,
		txRepo:        txRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// StoreAnalytics implements usecase.AnalyticsUsecase.
func (s *AnalyticsService) StoreAnalytics(ctx context.Context) (*usecase.StoreAnalyticsReport, error) {
	stores, err := s.storeRepo.ListStores(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list stores")
	}

	now := time.Now().UTC()
	since := now.Add(-recentWindow)

	report := &usecase.StoreAnalyticsReport{
		Stores:      make([]*usecase.StorePerformance, 0, len(stores)),
		TotalStores: len(stores),
		Window:      recentWindow,
		GeneratedAt: now,
	}

	for _, store := range stores {
		transactions, err := s.txRepo.ListTransactionsByStore(ctx, store.ID, since)
		if err != nil {
			return nil, errors.Wrapf(err, "list recent transactions for %s", store.ID)
		}

		perf := &usecase.StorePerformance{
			Store:        store,
			RecentOrders: len(transactions),
			Channels:     make(map[string]int),
		}
		for _, tx := range transactions {
			perf.RecentRevenue += tx.Total
			perf.Channels[tx.Channel.String()]++
		}
		if perf.RecentOrders > 0 {
			perf.AvgOrderValue = perf.RecentRevenue / entity.Money(perf.RecentOrders)
		}

		report.Stores = append(report.Stores, perf)
	}

	// Busiest stores first; id breaks ties so the ordering is stable.
	sort.Slice(report.Stores, func(i, j int) bool {
		left, right := report.Stores[i], report.Stores[j]
		if left.RecentRevenue != right.RecentRevenue {
			return left.RecentRevenue > right.RecentRevenue
		}

		return left.Store.ID < right.Store.ID
	})

	return report, nil
}

// InventoryAnalytics implements usecase.AnalyticsUsecase.
func (s *AnalyticsService) InventoryAnalytics(ctx context.Context, storeID string) (*usecase.InventoryAnalyticsReport, error) {
	if _, err := s.storeRepo.FindStoreByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound.WithDetails(storeID)
		}

		return nil, err
	}

	records, err := s.inventoryRepo.ListInventoryByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrapf(err, "list inventory for %s", storeID)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })

	report := &usecase.InventoryAnalyticsReport{
		StoreID:     storeID,
		TotalItems:  len(records),
		Items:       records,
		GeneratedAt: time.Now().UTC(),
	}

	for _, record := range records {
		status := record.Status()
		switch status {
		case entity.StockCritical:
			report.CriticalItems++
		case entity.StockLow:
			report.LowItems++
		case entity.StockAdequate:
			report.AdequateItems++
		}

		var action string
		switch status {
		case entity.StockCritical:
			action = actionReorderNow
		case entity.StockLow:
			action = actionReorderSoon
		default:
			continue
		}

		report.Recommendations = append(report.Recommendations, &usecase.ReorderRecommendation{
			ItemID:       record.ItemID,
			ItemName:     record.ItemName,
			Action:       action,
			CurrentStock: record.Quantity,
			ReorderPoint: record.ReorderThreshold,
			Status:       status,
		})
	}

	return report, nil
}
