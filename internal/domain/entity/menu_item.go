// Package entity contains the core business objects of the project.
package entity

import "time"

// MenuItem is a sellable catalog item. Items are immutable after catalog
// load except for out-of-band flag/price revisions.
type MenuItem struct {
	ID             string    `json:"id"`              // Stable catalog identifier, e.g. "bucket6pc".
	Name           string    `json:"name"`            // Display name, e.g. "Chickenjoy Bucket (6 pc)".
	Category       string    `json:"category"`        // Menu category, e.g. "chicken", "burgers", "desserts".
	Description    string    `json:"description"`     // Short marketing description.
	Price          Money     `json:"price"`           // Unit price in minor units; never negative.
	PointsValue    int       `json:"points_value"`    // Points required to redeem this item as a reward.
	IsNew          bool      `json:"is_new"`          // Item is flagged as a new arrival.
	IsBestseller   bool      `json:"is_bestseller"`   // Item is flagged as a bestseller.
	SearchableText string    `json:"searchable_text"` // Enriched text consumed by the ranking collaborator.
	UpdatedAt      time.Time `json:"updated_at"`      // Timestamp of the last out-of-band revision.
}
