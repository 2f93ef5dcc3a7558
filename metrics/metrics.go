package metrics

import (
	"time"
)

// View labels for cache metrics.
const (
	ViewBusView               = "bus_view"
	ViewBusBreakerView        = "bus_breaker_view"
	ViewConnectedComponents   = "connected_components"
	ViewSynchronousComponents = "synchronous_components"
)

// Topology operation results.
const (
	ResultOK    = "ok"
	ResultNoop  = "noop"
	ResultError = "error"
)

// RecordVariantOperation records a variant store operation and the variant
// count after it.
func (r *Registry) RecordVariantOperation(op string, variants int) {
	if r == nil {
		return
	}
	r.VariantOperationsTotal.WithLabelValues(op).Inc()
	r.VariantsTotal.Set(float64(variants))
}

// SetVariants updates the variant count.
func (r *Registry) SetVariants(n int) {
	if r == nil {
		return
	}
	r.VariantsTotal.Set(float64(n))
}

// SetStatefulEntities updates the number of registered stateful entities.
func (r *Registry) SetStatefulEntities(n int) {
	if r == nil {
		return
	}
	r.StatefulEntitiesTotal.Set(float64(n))
}

// RecordTopologyOperation records an attach/detach/connect/disconnect.
func (r *Registry) RecordTopologyOperation(op, result string) {
	if r == nil {
		return
	}
	r.TopologyOperationsTotal.WithLabelValues(op, result).Inc()
}

// RecordInvalidation records a cache invalidation.
func (r *Registry) RecordInvalidation() {
	if r == nil {
		return
	}
	r.CacheInvalidationsTotal.Inc()
}

// RecordRebuild records a derived view rebuild with its duration.
func (r *Registry) RecordRebuild(view string, duration time.Duration) {
	if r == nil {
		return
	}
	r.CacheRebuildsTotal.WithLabelValues(view).Inc()
	r.CacheRebuildDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// RecordNotifications records n referrer notifications of kind.
func (r *Registry) RecordNotifications(kind string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.ReferrerNotificationsTotal.WithLabelValues(kind).Add(float64(n))
}
