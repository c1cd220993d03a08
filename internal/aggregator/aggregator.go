// Package aggregator drives the fusion pipeline: cache check, concurrent
// source fan-out, backfill and filler injection, per-point enrichment,
// merge, and snapshot publication.
package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sumatra-gis/hazard-sentinel/internal/fusion"
	"github.com/sumatra-gis/hazard-sentinel/internal/ingestion"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
	"github.com/sumatra-gis/hazard-sentinel/internal/observability"
	"github.com/sumatra-gis/hazard-sentinel/internal/weather"
	"github.com/sumatra-gis/hazard-sentinel/internal/worker"
)

type Aggregator struct {
	sources       []ingestion.Source // fixed fold order; index 0 is the most trusted feed
	forecaster    weather.Forecaster
	cache         *Cache
	metrics       *observability.Metrics
	flight        singleflight.Group
	enrichWorkers int
	fillerEnabled bool
}

// New builds an aggregator over the given sources. The slice order defines
// the accumulation order of the merge step and must list the most trusted
// feed first so trust resolution stays reproducible.
func New(sources []ingestion.Source, forecaster weather.Forecaster, cache *Cache, metrics *observability.Metrics, enrichWorkers int, fillerEnabled bool) *Aggregator {
	return &Aggregator{
		sources:       sources,
		forecaster:    forecaster,
		cache:         cache,
		metrics:       metrics,
		enrichWorkers: enrichWorkers,
		fillerEnabled: fillerEnabled,
	}
}

// Points returns the fused hazard set, serving the cached snapshot while
// fresh and rebuilding behind a single-flight guard otherwise. It never
// fails: every upstream failure degrades to fewer points.
func (a *Aggregator) Points(ctx context.Context) *Snapshot {
	if snap, ok := a.cache.Get(); ok {
		a.metrics.CacheHits.Inc()
		return snap
	}
	a.metrics.CacheMisses.Inc()

	// Detach the rebuild from the leader request's cancellation so one
	// disconnecting client cannot fail the flight for its followers.
	rebuildCtx := context.WithoutCancel(ctx)

	v, _, _ := a.flight.Do("aggregate", func() (any, error) {
		// A follower may have queued behind a rebuild that already
		// published; don't run the pipeline twice for one expiry.
		if snap, ok := a.cache.Get(); ok {
			return snap, nil
		}
		return a.rebuild(rebuildCtx), nil
	})

	return v.(*Snapshot)
}

func (a *Aggregator) rebuild(ctx context.Context) *Snapshot {
	start := time.Now()

	// Settle-all fan-out: every source runs to completion or failure on
	// its own; results land in per-source slots so the fold order below
	// is independent of completion order.
	results := make([][]models.HazardPoint, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src ingestion.Source) {
			defer wg.Done()
			points, err := src.Fetch(ctx)
			if err != nil {
				slog.Error("source fetch failed", "source", src.Name(), "error", err)
				a.metrics.SourceErrors.WithLabelValues(src.Name()).Inc()
				return
			}
			slog.Debug("source fetch complete", "source", src.Name(), "count", len(points))
			results[i] = points
		}(i, src)
	}
	wg.Wait()

	var all []models.HazardPoint
	for _, points := range results {
		all = append(all, points...)
	}

	all = append(all, ingestion.Backfill(all)...)
	if a.fillerEnabled {
		all = append(all, ingestion.Filler()...)
	}

	a.enrich(ctx, all)

	merged := fusion.Merge(all)
	snap := a.cache.Put(merged)

	a.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	a.metrics.PointsServed.Set(float64(len(merged)))
	slog.Info("aggregation cycle complete",
		"raw", len(all), "merged", len(merged), "duration", time.Since(start))

	return snap
}

// enrich fills risk score, impact assessment and, for rain-driven hazard
// types that lack one, the weather forecast. Points are mutated in place
// through a bounded worker pool; enrichment failures leave degraded
// defaults, never holes.
func (a *Aggregator) enrich(ctx context.Context, points []models.HazardPoint) {
	pool := worker.NewPool(a.enrichWorkers, len(points), func(ctx context.Context, p *models.HazardPoint) {
		if wantsForecast(p) {
			fc := a.forecaster.Forecast(ctx, p.Coords.Lat, p.Coords.Lng)
			p.Forecast = fc.Text
			if fc.RainfallMm > 0 {
				if p.Details == nil {
					p.Details = &models.Details{}
				}
				p.Details.RainfallMm = fc.RainfallMm
			}
		}

		impact := fusion.AssessImpact(p.Coords.Lat, p.Coords.Lng)
		p.Impact = &impact
		p.RiskScore = fusion.Score(*p)
	})

	pool.Start(ctx)
	for i := range points {
		pool.Submit(&points[i])
	}
	pool.Stop()
}

// wantsForecast reports whether the per-point weather lookup applies:
// rain-sensitive hazard types that did not already carry a forecast.
func wantsForecast(p *models.HazardPoint) bool {
	if p.Forecast != "" {
		return false
	}
	switch p.Type {
	case models.HazardTypeFire, models.HazardTypeFlood, models.HazardTypeLandslide:
		return true
	default:
		return false
	}
}
