// Package entity contains the core business objects of the project.
package entity

import "time"

// Store is a physical branch. The rolling metrics are denormalized onto the
// record as a side effect of committed transactions and feed the dashboard
// aggregation without a full transaction scan.
type Store struct {
	ID         string    `json:"id"`          // Stable store identifier, e.g. "store_001".
	Name       string    `json:"name"`        // Branch display name.
	Location   string    `json:"location"`    // Human-readable location.
	OrderCount int64     `json:"order_count"` // Rolling count of committed orders.
	Revenue    Money     `json:"revenue"`     // Rolling committed revenue in minor units.
	UpdatedAt  time.Time `json:"updated_at"`
}
