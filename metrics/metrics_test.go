package metrics_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/netmodel/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := metrics.NewRegistry("")
	require.NotNil(t, r.GetPrometheusRegistry())

	r.RecordVariantOperation("create", 2)
	r.RecordVariantOperation("create", 3)
	r.RecordVariantOperation("remove", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.VariantOperationsTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.VariantOperationsTotal.WithLabelValues("remove")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.VariantsTotal))

	n, err := testutil.GatherAndCount(r.GetPrometheusRegistry(), "netmodel_variant_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecordTopology(t *testing.T) {
	r := metrics.NewRegistry("grid")

	r.RecordTopologyOperation("connect", metrics.ResultOK)
	r.RecordTopologyOperation("connect", metrics.ResultNoop)
	r.RecordInvalidation()
	r.RecordRebuild(metrics.ViewBusView, time.Millisecond)
	r.RecordNotifications("removal", 3)
	r.RecordNotifications("replacement", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.TopologyOperationsTotal.WithLabelValues("connect", "noop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheInvalidationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheRebuildsTotal.WithLabelValues(metrics.ViewBusView)))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.ReferrerNotificationsTotal.WithLabelValues("removal")))

	n, err := testutil.GatherAndCount(r.GetPrometheusRegistry(), "grid_referrer_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *metrics.Registry
	assert.NotPanics(t, func() {
		r.RecordVariantOperation("create", 1)
		r.SetVariants(2)
		r.SetStatefulEntities(4)
		r.RecordTopologyOperation("attach", metrics.ResultOK)
		r.RecordInvalidation()
		r.RecordRebuild(metrics.ViewBusView, time.Second)
		r.RecordNotifications("removal", 1)
	})
	assert.Nil(t, r.GetPrometheusRegistry())
}
