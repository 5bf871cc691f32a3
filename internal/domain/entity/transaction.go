// Package entity contains the core business objects of the project.
package entity

import "time"

// Channel represents the sales channel an order arrived through.
type Channel string

const (
	// ChannelInStore is a dine-in / counter order.
	ChannelInStore Channel = "in-store"
	// ChannelApp is an order placed through the mobile app.
	ChannelApp Channel = "app"
	// ChannelDelivery is a third-party or in-house delivery order.
	ChannelDelivery Channel = "delivery"
)

// String returns the string representation of the Channel.
func (c Channel) String() string {
	return string(c)
}

// IsValid checks if the Channel is a valid value.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelInStore, ChannelApp, ChannelDelivery:
		return true
	default:
		return false
	}
}

// TransactionStatus is the lifecycle status of a committed transaction.
type TransactionStatus string

const (
	// StatusCommitted marks a fully applied transaction.
	StatusCommitted TransactionStatus = "Committed"
	// StatusDegraded marks a committed sale whose downstream loyalty effect
	// could not be applied; flagged for reconciliation, never rolled back.
	StatusDegraded TransactionStatus = "Degraded"
)

// TransactionLine is one ordered line item. The unit price and line total
// are fixed at creation time from catalog state; later catalog revisions
// never recompute them.
type TransactionLine struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"` // Always >= 1.
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"` // UnitPrice * Quantity.
}

// Transaction is a committed point-of-sale record. It is created once,
// never deleted; the only permitted mutation is Committed -> Degraded.
type Transaction struct {
	ID           string            `json:"id"`            // Unique, sequence-ordered, never reused.
	CustomerID   string            `json:"customer_id"`   // Foreign reference, required.
	StoreID      string            `json:"store_id"`      // Store the order was placed at.
	Channel      Channel           `json:"channel"`       // Sales channel.
	Lines        []TransactionLine `json:"lines"`         // Ordered line items.
	Total        Money             `json:"total"`         // Sum of line totals, fixed at creation.
	PointsEarned int64             `json:"points_earned"` // Points awarded by the loyalty accumulator.
	Timestamp    time.Time         `json:"timestamp"`     // Monotonically non-decreasing creation time.
	Status       TransactionStatus `json:"status"`
}
