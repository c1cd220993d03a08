package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sumatra-gis/hazard-sentinel/internal/ingestion"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
	"github.com/sumatra-gis/hazard-sentinel/internal/observability"
	"github.com/sumatra-gis/hazard-sentinel/internal/weather"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubSource is a scripted ingestion.Source that counts fetches.
type stubSource struct {
	name       string
	points     []models.HazardPoint
	err        error
	delay      time.Duration
	fetchCount atomic.Int64
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]models.HazardPoint, error) {
	s.fetchCount.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.points, nil
}

// dryForecaster always reports no rain.
type dryForecaster struct{}

func (dryForecaster) Forecast(ctx context.Context, lat, lng float64) weather.Forecast {
	return weather.Forecast{Text: "Rainfall (NOAA GFS): 0.0mm"}
}

func quakePoint(id string, source models.Source, lat, lng, mag float64) models.HazardPoint {
	return models.HazardPoint{
		ID:       id,
		Type:     models.HazardTypeEarthquake,
		Source:   source,
		Severity: models.SeverityHigh,
		Coords:   models.Coordinates{Lat: lat, Lng: lng},
		Details:  &models.Details{Magnitude: mag, DepthKm: 30},
	}
}

func newTestAggregator(clock clockwork.Clock, fillerEnabled bool, sources ...ingestion.Source) *Aggregator {
	cache := NewCache(5*time.Minute, clock)
	return New(sources, dryForecaster{}, cache, observability.New(), 4, fillerEnabled)
}

func TestAggregator_CacheFreshnessWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &stubSource{name: "bmkg", points: []models.HazardPoint{
		quakePoint("bmkg-1", models.SourceBMKG, 3.4, 96.0, 6.2),
	}}
	agg := newTestAggregator(clock, false, src)

	first := agg.Points(context.Background())
	require.NotNil(t, first)
	assert.Equal(t, int64(1), src.fetchCount.Load())

	// One second before expiry the identical snapshot is served with no
	// new fetch.
	clock.Advance(4*time.Minute + 59*time.Second)
	cached := agg.Points(context.Background())
	assert.Same(t, first, cached)
	assert.Equal(t, int64(1), src.fetchCount.Load())

	// Just past the window a rebuild is triggered.
	clock.Advance(2 * time.Second)
	rebuilt := agg.Points(context.Background())
	assert.NotSame(t, first, rebuilt)
	assert.Equal(t, int64(2), src.fetchCount.Load())
}

func TestAggregator_AllSourcesFailStillServes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	agg := newTestAggregator(clock, true,
		&stubSource{name: "bmkg", err: errors.New("connection refused")},
		&stubSource{name: "eonet", err: errors.New("status 502")},
		&stubSource{name: "usgs", err: errors.New("timeout")},
	)

	snap := agg.Points(context.Background())
	require.NotNil(t, snap)
	require.NotEmpty(t, snap.Points)

	for _, p := range snap.Points {
		// Only the deterministic generators can have contributed.
		assert.Contains(t, []models.Source{models.SourceBackfill, models.SourceFiller}, p.Source)
		assert.GreaterOrEqual(t, p.RiskScore, 50)
		assert.LessOrEqual(t, p.RiskScore, 100)
		require.NotNil(t, p.Impact)
		assert.NotEmpty(t, p.Impact.NearestCity)
	}
}

func TestAggregator_PartialFailureKeepsHealthySources(t *testing.T) {
	clock := clockwork.NewFakeClock()
	healthy := &stubSource{name: "bmkg", points: []models.HazardPoint{
		quakePoint("bmkg-1", models.SourceBMKG, 3.4, 96.0, 6.2),
	}}
	agg := newTestAggregator(clock, false,
		healthy,
		&stubSource{name: "usgs", err: errors.New("boom")},
	)

	snap := agg.Points(context.Background())
	ids := make([]string, 0, len(snap.Points))
	for _, p := range snap.Points {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "bmkg-1")
}

func TestAggregator_TrustedSourceWinsAcrossFeeds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	agg := newTestAggregator(clock, false,
		&stubSource{name: "bmkg", points: []models.HazardPoint{
			quakePoint("bmkg-dup", models.SourceBMKG, 5.00, 96.10, 6.3),
		}},
		// Slower global feed reporting the same physical event.
		&stubSource{name: "usgs", delay: 20 * time.Millisecond, points: []models.HazardPoint{
			quakePoint("usgs-dup", models.SourceUSGS, 5.05, 96.15, 6.4),
		}},
	)

	snap := agg.Points(context.Background())
	var quakes []models.HazardPoint
	for _, p := range snap.Points {
		if p.Type == models.HazardTypeEarthquake {
			quakes = append(quakes, p)
		}
	}
	require.Len(t, quakes, 1)
	assert.Equal(t, "bmkg-dup", quakes[0].ID)
}

func TestAggregator_EnrichmentFillsForecastImpactScore(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fire := models.HazardPoint{
		ID:       "eonet-fire",
		Type:     models.HazardTypeFire,
		Source:   models.SourceEONET,
		Severity: models.SeverityHigh,
		Coords:   models.Coordinates{Lat: 1.67, Lng: 101.45},
	}
	agg := newTestAggregator(clock, false, &stubSource{name: "eonet", points: []models.HazardPoint{fire}})

	snap := agg.Points(context.Background())
	got := findPoint(t, snap, "eonet-fire")
	assert.Equal(t, "Rainfall (NOAA GFS): 0.0mm", got.Forecast)
	require.NotNil(t, got.Impact)
	assert.Equal(t, "Pekanbaru", got.Impact.NearestCity)
	assert.Equal(t, 65, got.RiskScore) // High fire, no thermal attribution
}

func TestAggregator_FillerFlag(t *testing.T) {
	countFillers := func(snap *Snapshot) int {
		n := 0
		for _, p := range snap.Points {
			if p.Source == models.SourceFiller {
				n++
			}
		}
		return n
	}

	on := newTestAggregator(clockwork.NewFakeClock(), true)
	assert.Positive(t, countFillers(on.Points(context.Background())))

	off := newTestAggregator(clockwork.NewFakeClock(), false)
	assert.Zero(t, countFillers(off.Points(context.Background())))
}

func TestAggregator_ConcurrentMissesRebuildOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	slow := &stubSource{
		name:  "bmkg",
		delay: 50 * time.Millisecond,
		points: []models.HazardPoint{
			quakePoint("bmkg-1", models.SourceBMKG, 3.4, 96.0, 6.2),
		},
	}
	agg := newTestAggregator(clock, false, slow)

	const callers = 16
	snaps := make([]*Snapshot, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = agg.Points(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), slow.fetchCount.Load(), "single-flight must collapse concurrent rebuilds")
	for _, s := range snaps {
		assert.Same(t, snaps[0], s)
	}
}

func TestAggregator_LeaderCancellationDoesNotFailFollowers(t *testing.T) {
	clock := clockwork.NewFakeClock()
	slow := &stubSource{
		name:  "bmkg",
		delay: 50 * time.Millisecond,
		points: []models.HazardPoint{
			quakePoint("bmkg-1", models.SourceBMKG, 3.4, 96.0, 6.2),
		},
	}
	agg := newTestAggregator(clock, false, slow)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		agg.Points(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel() // leader's request dies mid-rebuild

	snap := agg.Points(context.Background())
	wg.Wait()

	require.NotNil(t, snap)
	findPoint(t, snap, "bmkg-1")
}

func findPoint(t *testing.T, snap *Snapshot, id string) models.HazardPoint {
	t.Helper()
	for _, p := range snap.Points {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("point %s not in snapshot", id)
	return models.HazardPoint{}
}
