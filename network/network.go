package network

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/internal/ctxlog"
	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/referrer"
	"github.com/katalvlaran/netmodel/variant"
)

// Network is the root of a model: it owns the variant dimension, the
// identifiable index, the terminal referrer registry and every substation,
// voltage level and connectable. It is not safe for concurrent mutation.
type Network struct {
	id        string
	variants  *variant.Manager
	index     Index
	listener  Listener
	referrers *referrer.Registry[*Terminal]
	logger    *slog.Logger
	metrics   *metrics.Registry

	nodeIndexLimit int

	substations   []*Substation
	voltageLevels []*VoltageLevel
	connectables  []*Connectable
	hvdcLines     []*HvdcLine
	areas         []*Area

	components *variant.Array[*componentCache]
}

// Option configures a Network.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	metrics        *metrics.Registry
	index          Index
	listener       Listener
	nodeIndexLimit int
	multiExecution bool
}

// WithLogger sets the network logger. A logger carried by the context of an
// operation takes precedence.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics reports model activity to r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) { o.metrics = r }
}

// WithIndex replaces the default MapIndex.
func WithIndex(idx Index) Option {
	return func(o *options) {
		if idx != nil {
			o.index = idx
		}
	}
}

// WithListener installs the notification sink.
func WithListener(l Listener) Option {
	return func(o *options) {
		if l != nil {
			o.listener = l
		}
	}
}

// WithNodeIndexLimit sets the default node bound of node-breaker voltage
// levels. Values <= 0 keep graph.DefaultVertexLimit.
func WithNodeIndexLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.nodeIndexLimit = limit
		}
	}
}

// WithMultiExecutionAccess starts the network with execution-bound variant
// bindings.
func WithMultiExecutionAccess(allow bool) Option {
	return func(o *options) { o.multiExecution = allow }
}

// New creates an empty network holding the initial variant. An empty id is
// replaced by a random UUID.
func New(id string, opts ...Option) *Network {
	o := options{
		logger:         ctxlog.Discard(),
		index:          NewMapIndex(),
		listener:       NopListener{},
		nodeIndexLimit: graph.DefaultVertexLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if id == "" {
		id = uuid.NewString()
	}
	n := &Network{
		id:             id,
		index:          o.index,
		listener:       o.listener,
		referrers:      referrer.NewRegistry[*Terminal](),
		logger:         o.logger.With("network", id),
		metrics:        o.metrics,
		nodeIndexLimit: o.nodeIndexLimit,
	}
	n.variants = variant.NewManager(
		variant.WithLogger(n.logger),
		variant.WithMetrics(o.metrics),
		variant.WithMultiExecutionAccess(o.multiExecution),
	)
	n.components = variant.NewArray[*componentCache](n.variants, n.variants.Size(), nil,
		variant.WithFresh(func() *componentCache { return &componentCache{} }),
		variant.WithRelease((*componentCache).invalidate))
	// the array starts with the network, so registration cannot mismatch
	_ = n.variants.Register(n.components)
	return n
}

// ID returns the network id.
func (n *Network) ID() string { return n.id }

// Variants returns the variant store.
func (n *Network) Variants() *variant.Manager { return n.variants }

// Index returns the identifiable index.
func (n *Network) Index() Index { return n.index }

// Referrers returns the terminal referrer registry.
func (n *Network) Referrers() *referrer.Registry[*Terminal] { return n.referrers }

// Metrics returns the metrics registry, possibly nil.
func (n *Network) Metrics() *metrics.Registry { return n.metrics }

// Logger returns the logger for ctx.
func (n *Network) Logger(ctx context.Context) *slog.Logger {
	return ctxlog.FromContext(ctx, n.logger)
}

// Identifiable returns the object registered under id.
func (n *Network) Identifiable(id string) (Identifiable, bool) { return n.index.Get(id) }

// Substations returns substations in creation order.
func (n *Network) Substations() []*Substation { return append([]*Substation(nil), n.substations...) }

// VoltageLevels returns voltage levels in creation order.
func (n *Network) VoltageLevels() []*VoltageLevel {
	return append([]*VoltageLevel(nil), n.voltageLevels...)
}

// Connectables returns connectables in creation order.
func (n *Network) Connectables() []*Connectable { return append([]*Connectable(nil), n.connectables...) }

// HvdcLines returns HVDC lines in creation order.
func (n *Network) HvdcLines() []*HvdcLine { return append([]*HvdcLine(nil), n.hvdcLines...) }

// Areas returns areas in creation order.
func (n *Network) Areas() []*Area { return append([]*Area(nil), n.areas...) }

// Substation returns the substation registered under id.
func (n *Network) Substation(id string) (*Substation, bool) {
	obj, ok := n.index.Get(id)
	s, isSub := obj.(*Substation)
	return s, ok && isSub
}

// VoltageLevel returns the voltage level registered under id.
func (n *Network) VoltageLevel(id string) (*VoltageLevel, bool) {
	obj, ok := n.index.Get(id)
	vl, isVL := obj.(*VoltageLevel)
	return vl, ok && isVL
}

// Connectable returns the connectable registered under id.
func (n *Network) Connectable(id string) (*Connectable, bool) {
	obj, ok := n.index.Get(id)
	c, isC := obj.(*Connectable)
	return c, ok && isC
}

// Switch returns the switch registered under id.
func (n *Network) Switch(id string) (*Switch, bool) {
	obj, ok := n.index.Get(id)
	s, isS := obj.(*Switch)
	return s, ok && isS
}

// Buses returns the bus view buses of every voltage level in creation order.
func (n *Network) Buses(ctx context.Context) ([]*CalculatedBus, error) {
	var out []*CalculatedBus
	for _, vl := range n.voltageLevels {
		buses, err := vl.Buses(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, buses...)
	}
	return out, nil
}

func (n *Network) register(obj Identifiable) error {
	if err := n.index.Add(obj); err != nil {
		return err
	}
	n.listener.OnCreation(obj)
	return nil
}

func (n *Network) unregister(obj Identifiable) {
	n.index.Remove(obj.ID())
	n.listener.OnRemoval(obj)
}

func (n *Network) notifyUpdate(ctx context.Context, obj Identifiable, attribute string, oldValue, newValue any) {
	variantID, _ := n.variants.WorkingVariantID(ctx)
	n.listener.OnUpdate(obj, attribute, variantID, oldValue, newValue)
}

// invalidateComponents drops the component partitions of the working variant.
func (n *Network) invalidateComponents(ctx context.Context) {
	_ = n.components.Update(ctx, func(c **componentCache) { (*c).invalidate() })
}

// invalidateAllComponents drops the component partitions of every variant.
func (n *Network) invalidateAllComponents() {
	n.components.Each(func(_ int, c *componentCache) { c.invalidate() })
}

func removeItem[T comparable](s []T, x T) []T {
	for i, cur := range s {
		if cur == x {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}
