package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name when none is configured.
const DefaultNamespace = "netmodel"

// Registry holds all metrics of a network model. A nil *Registry is valid and
// records nothing.
type Registry struct {
	// Variant Metrics
	VariantOperationsTotal *prometheus.CounterVec
	VariantsTotal          prometheus.Gauge
	StatefulEntitiesTotal  prometheus.Gauge

	// Topology Metrics
	TopologyOperationsTotal *prometheus.CounterVec
	CacheInvalidationsTotal prometheus.Counter
	CacheRebuildsTotal      *prometheus.CounterVec
	CacheRebuildDuration    *prometheus.HistogramVec

	// Referrer Metrics
	ReferrerNotificationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized under
// namespace (DefaultNamespace when empty).
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initVariantMetrics(namespace)
	r.initTopologyMetrics(namespace)
	r.initReferrerMetrics(namespace)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
