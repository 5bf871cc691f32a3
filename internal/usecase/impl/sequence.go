package impl

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// txIDGenerator assigns globally unique transaction ids. The zero-padded
// sequence prefix makes id order equal creation order, which breaks
// timestamp ties deterministically under rapid succession.
type txIDGenerator struct {
	seq atomic.Uint64
}

func (g *txIDGenerator) Next() string {
	n := g.seq.Add(1)

	return fmt.Sprintf("txn_%010d_%s", n, uuid.NewString()[:8])
}

// monotonicClock issues non-decreasing timestamps even when the wall clock
// steps backwards between calls.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *monotonicClock) Now() time.Time {
	now := time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Before(c.last) {
		now = c.last
	}
	c.last = now

	return now
}
