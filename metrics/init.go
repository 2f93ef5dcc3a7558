package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initVariantMetrics(ns string) {
	r.VariantOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "variant_operations_total",
			Help:      "Total number of variant store operations",
		},
		[]string{"op"}, // create, clone, overwrite, remove
	)

	r.VariantsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "variants",
			Help:      "Current number of variants",
		},
	)

	r.StatefulEntitiesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "stateful_entities",
			Help:      "Number of entities registered with the variant store",
		},
	)
}

func (r *Registry) initTopologyMetrics(ns string) {
	r.TopologyOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "topology_operations_total",
			Help:      "Total number of topology operations",
		},
		[]string{"op", "result"}, // attach|detach|connect|disconnect, ok|noop|error
	)

	r.CacheInvalidationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_invalidations_total",
			Help:      "Total number of topology cache invalidations",
		},
	)

	r.CacheRebuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_rebuilds_total",
			Help:      "Total number of derived view rebuilds",
		},
		[]string{"view"},
	)

	r.CacheRebuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "cache_rebuild_duration_seconds",
			Help:      "Duration of derived view rebuilds in seconds",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"view"},
	)
}

func (r *Registry) initReferrerMetrics(ns string) {
	r.ReferrerNotificationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: ns,
			Name:      "referrer_notifications_total",
			Help:      "Total number of referrer notifications delivered",
		},
		[]string{"kind"}, // removal, replacement
	)
}
