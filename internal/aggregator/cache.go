package aggregator

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// Snapshot is one immutable aggregation result. Its points must not be
// mutated after publication; a new cycle always builds a whole new slice.
type Snapshot struct {
	Points     []models.HazardPoint
	ProducedAt time.Time
}

// Cache holds the single time-boxed snapshot that short-circuits the
// pipeline while fresh. The clock is injected so freshness behavior is
// testable with a fake clock.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	clock clockwork.Clock
	snap  *Snapshot
}

func NewCache(ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns the current snapshot if it is younger than the freshness
// window.
func (c *Cache) Get() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap == nil {
		return nil, false
	}
	if c.clock.Since(c.snap.ProducedAt) >= c.ttl {
		return nil, false
	}
	return c.snap, true
}

// Put atomically replaces the snapshot with a fully-built new one and
// returns it. Readers never observe a partial update.
func (c *Cache) Put(points []models.HazardPoint) *Snapshot {
	snap := &Snapshot{
		Points:     points,
		ProducedAt: c.clock.Now(),
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return snap
}
