package usecase

import (
	"context"

	"hive/internal/domain/entity"
)

// RedeemInput requests a points redemption against a named reward.
type RedeemInput struct {
	Points   int64  `json:"points"`
	ItemName string `json:"item_name"`
}

// RedeemResult reports the balance after a successful redemption.
type RedeemResult struct {
	CustomerID string `json:"customer_id"`
	Redeemed   int64  `json:"redeemed"`
	NewBalance int64  `json:"new_balance"`
}

// LoyaltyUsecase exposes member-facing loyalty reads and redemptions.
// Purchase-driven accrual goes through the order pipeline, never here.
type LoyaltyUsecase interface {
	// GetCustomer returns the loyalty profile.
	GetCustomer(ctx context.Context, customerID string) (*entity.Customer, error)

	// Redeem deducts points for a reward. Lifetime spend and tier are
	// untouched; redemption never demotes a member.
	Redeem(ctx context.Context, customerID string, input *RedeemInput) (*RedeemResult, error)

	// Recommendations returns menu items ranked against the customer's
	// favorite items, falling back to popular picks for new members.
	Recommendations(ctx context.Context, customerID string, limit int) ([]*RankedMenuItem, error)
}
