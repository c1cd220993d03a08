// Package observability wires the prometheus collectors for the
// aggregation pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registry *prometheus.Registry

	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	SourceErrors  *prometheus.CounterVec
	CycleDuration prometheus.Histogram
	PointsServed  prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "hazard_cache_hits_total",
			Help: "Requests served from the fresh snapshot.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "hazard_cache_misses_total",
			Help: "Requests that found the snapshot stale or empty.",
		}),
		SourceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hazard_source_errors_total",
			Help: "Fetch failures per upstream source.",
		}, []string{"source"}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hazard_aggregation_cycle_seconds",
			Help:    "Wall time of a full aggregation cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		PointsServed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hazard_points_current",
			Help: "Points in the published snapshot.",
		}),
	}
}
