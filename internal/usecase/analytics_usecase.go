package usecase

import (
	"context"
	"time"

	"hive/internal/domain/entity"
)

// StorePerformance combines a store record with its recent activity window.
type StorePerformance struct {
	Store         *entity.Store `json:"store"`
	RecentOrders  int           `json:"recent_orders"`
	RecentRevenue entity.Money  `json:"recent_revenue"`
	AvgOrderValue entity.Money  `json:"avg_order_value"`
	Channels      map[string]int `json:"channels"`
}

// StoreAnalyticsReport is the dashboard view over all stores.
type StoreAnalyticsReport struct {
	Stores      []*StorePerformance `json:"stores"`
	TotalStores int                 `json:"total_stores"`
	Window      time.Duration       `json:"-"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ReorderRecommendation flags an inventory position needing replenishment.
type ReorderRecommendation struct {
	ItemID       string             `json:"item_id"`
	ItemName     string             `json:"item_name"`
	Action       string             `json:"action"`
	CurrentStock int                `json:"current_stock"`
	ReorderPoint int                `json:"reorder_point"`
	Status       entity.StockStatus `json:"status"`
}

// InventoryAnalyticsReport summarizes stock health for one store.
type InventoryAnalyticsReport struct {
	StoreID         string                    `json:"store_id"`
	TotalItems      int                       `json:"total_items"`
	CriticalItems   int                       `json:"critical_items"`
	LowItems        int                       `json:"low_items"`
	AdequateItems   int                       `json:"adequate_items"`
	Items           []*entity.InventoryRecord `json:"items"`
	Recommendations []*ReorderRecommendation  `json:"recommendations"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// AnalyticsUsecase exposes the aggregate dashboard reads. Reports observe
// barrier-visible state only; a successful Submit guarantees its order is
// included in subsequent reports.
type AnalyticsUsecase interface {
	// StoreAnalytics reports rolling metrics and recent activity per store.
	StoreAnalytics(ctx context.Context) (*StoreAnalyticsReport, error)

	// InventoryAnalytics reports stock health for one store.
	InventoryAnalytics(ctx context.Context, storeID string) (*InventoryAnalyticsReport, error)
}
