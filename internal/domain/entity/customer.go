// Package entity contains the core business objects of the project.
package entity

import "time"

// Tier is the ordered loyalty classification derived from lifetime spend.
type Tier string

const (
	// TierBeeBuddy is the entry tier every customer starts in.
	TierBeeBuddy Tier = "BeeBuddy"
	// TierBeeFan is the mid tier.
	TierBeeFan Tier = "BeeFan"
	// TierBeeElite is the top tier.
	TierBeeElite Tier = "BeeElite"
)

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierBeeBuddy, TierBeeFan, TierBeeElite:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the tier, lowest first. It is used
// to guarantee that a purchase never moves a customer to a lower tier.
func (t Tier) Rank() int {
	switch t {
	case TierBeeFan:
		return 1
	case TierBeeElite:
		return 2
	default:
		return 0
	}
}

// Customer is a loyalty program member. Loyalty fields are mutated only by
// the loyalty accumulator; lifetime spend is monotonically non-decreasing
// and the tier is always a function of it.
type Customer struct {
	ID            string    `json:"id"`             // Stable customer identifier, e.g. "mike001".
	Name          string    `json:"name"`           // Display name.
	LifetimeSpend Money     `json:"lifetime_spend"` // Cumulative committed spend in minor units.
	Points        int64     `json:"points"`         // Current redeemable points balance; never negative.
	Tier          Tier      `json:"tier"`           // Loyalty tier derived from lifetime spend.
	TotalOrders   int       `json:"total_orders"`   // Number of committed orders.
	FavoriteItems []string  `json:"favorite_items"` // Seed terms for personalized recommendations.
	LastActivity  time.Time `json:"last_activity"`  // Timestamp of the last loyalty mutation.
}
