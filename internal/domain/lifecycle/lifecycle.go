// Package lifecycle holds process lifecycle constants shared across deliveries.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and collaborator clients.
const DefaultTimeout = 10 * time.Second
