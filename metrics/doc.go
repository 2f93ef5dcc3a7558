// Package metrics exposes Prometheus instrumentation for a network model:
// variant store operations, topology operations, derived view rebuilds and
// referrer notifications.
//
// Every Record method is safe on a nil *Registry, so instrumented code never
// checks whether metrics are enabled.
package metrics
