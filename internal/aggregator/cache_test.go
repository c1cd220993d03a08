package aggregator

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

func TestCache_EmptyUntilFirstPut(t *testing.T) {
	cache := NewCache(5*time.Minute, clockwork.NewFakeClock())
	_, ok := cache.Get()
	assert.False(t, ok)
}

func TestCache_FreshWithinWindowStaleAfter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(5*time.Minute, clock)

	published := cache.Put([]models.HazardPoint{{ID: "p1"}})

	got, ok := cache.Get()
	require.True(t, ok)
	assert.Same(t, published, got)

	clock.Advance(4*time.Minute + 59*time.Second)
	_, ok = cache.Get()
	assert.True(t, ok)

	// Exactly at the window boundary the snapshot counts as stale.
	clock.Advance(time.Second)
	_, ok = cache.Get()
	assert.False(t, ok)
}

func TestCache_PutReplacesWholeSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(5*time.Minute, clock)

	first := cache.Put([]models.HazardPoint{{ID: "old"}})
	second := cache.Put([]models.HazardPoint{{ID: "new"}})

	got, ok := cache.Get()
	require.True(t, ok)
	assert.NotSame(t, first, got)
	assert.Same(t, second, got)
	require.Len(t, got.Points, 1)
	assert.Equal(t, "new", got.Points[0].ID)
}
