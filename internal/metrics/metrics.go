package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service-health metrics. promauto registers everything with the default
// registry, exposed on /metrics. These are operational signals only; no
// per-link click analytics are collected.
var (
	// HTTPRequestDuration tracks HTTP request latency per route and status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	// MappingsCreatedTotal counts newly persisted mappings
	MappingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mappings_created_total",
			Help: "Total number of new short code mappings persisted",
		},
	)

	// ShortenReusedTotal counts idempotent shorten calls that returned an
	// already existing mapping
	ShortenReusedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorten_reused_total",
			Help: "Total number of shorten calls answered by an existing mapping",
		},
	)

	// LookupsTotal counts resolved lookups by intent (redirect or expand)
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookups_total",
			Help: "Total number of successful short code lookups",
		},
		[]string{"intent"},
	)

	// CacheHitsTotal counts cache hits
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMissesTotal counts cache misses
	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheErrorsTotal counts failed cache reads, kept apart from misses so
	// a Redis outage is distinguishable from a cold cache
	CacheErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of failed cache operations",
		},
	)

	// CodeCollisionsTotal counts generated codes rejected by the store's
	// unique index, each causing one regeneration attempt
	CodeCollisionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "code_collisions_total",
			Help: "Total number of generated short codes that collided",
		},
	)

	// InsertRacesLostTotal counts shorten calls that lost a same-URL insert
	// race and returned the winner's code
	InsertRacesLostTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "insert_races_lost_total",
			Help: "Total number of shorten calls that lost a concurrent insert race",
		},
	)
)
