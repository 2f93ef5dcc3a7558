package network

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/katalvlaran/netmodel/variant"
)

// busBreakerTopology stores configured buses on the vertices and switches on
// the edges of a graph. Terminals carry their own per-variant connected flag.
type busBreakerTopology struct {
	vl    *VoltageLevel
	g     *graph.Graph[*ConfiguredBus, *Switch]
	buses map[string]*ConfiguredBus
	order []*ConfiguredBus
	cache *variant.Array[*busCache]
}

type busStructureListener struct {
	graph.NopListener[*ConfiguredBus, *Switch]
	vl *VoltageLevel
}

func (l busStructureListener) EdgeAdded(int, *Switch)   { l.vl.invalidateAll() }
func (l busStructureListener) EdgeRemoved(int, *Switch) { l.vl.invalidateAll() }

func (l busStructureListener) EdgeBeforeRemoval(_ int, sw *Switch) { l.vl.dropSwitch(sw) }

func newBusBreakerTopology(vl *VoltageLevel) *busBreakerTopology {
	m := vl.network.variants
	t := &busBreakerTopology{
		vl:    vl,
		g:     graph.New[*ConfiguredBus, *Switch](),
		buses: make(map[string]*ConfiguredBus),
		cache: variant.NewArray[*busCache](m, m.Size(), nil,
			variant.WithFresh(func() *busCache { return &busCache{} }),
			variant.WithRelease((*busCache).invalidate)),
	}
	t.g.AddListener(busStructureListener{vl: vl})
	return t
}

func (t *busBreakerTopology) states() variant.Stateful { return t.cache }

// NewConfiguredBus creates a configured bus in a bus-breaker level.
func (vl *VoltageLevel) NewConfiguredBus(id string) (*ConfiguredBus, error) {
	if err := vl.checkLive(); err != nil {
		return nil, err
	}
	if err := vl.requireKind(BusBreaker); err != nil {
		return nil, err
	}
	n := vl.network
	if err := checkID(n.index, id); err != nil {
		return nil, err
	}
	t := vl.bb
	b := &ConfiguredBus{
		id:    id,
		vl:    vl,
		state: variant.NewArray(n.variants, n.variants.Size(), newBusState),
	}
	if err := n.variants.Register(b.state); err != nil {
		return nil, err
	}
	if err := n.register(b); err != nil {
		n.variants.Unregister(b.state)
		return nil, err
	}
	b.vertex = t.g.AddVertex()
	_ = t.g.SetVertexObject(b.vertex, b)
	t.buses[id] = b
	t.order = append(t.order, b)
	vl.invalidateAll()
	return b, nil
}

// ConfiguredBus returns the configured bus registered under id in vl.
func (vl *VoltageLevel) ConfiguredBus(id string) (*ConfiguredBus, bool) {
	if vl.bb == nil {
		return nil, false
	}
	b, ok := vl.bb.buses[id]
	return b, ok
}

// ConfiguredBuses returns the configured buses of vl in creation order.
func (vl *VoltageLevel) ConfiguredBuses() []*ConfiguredBus {
	if vl.bb == nil {
		return nil
	}
	return append([]*ConfiguredBus(nil), vl.bb.order...)
}

// RemoveConfiguredBus deletes a configured bus that has neither terminals
// nor switches.
func (vl *VoltageLevel) RemoveConfiguredBus(ctx context.Context, id string) error {
	if err := vl.requireKind(BusBreaker); err != nil {
		return err
	}
	t := vl.bb
	b, ok := t.buses[id]
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrBusNotFound, id, vl.id)
	}
	if len(b.terminals) > 0 || len(t.g.EdgesConnectedToVertex(b.vertex)) > 0 {
		return fmt.Errorf("%w: %q", ErrConfiguredBusInUse, id)
	}
	if _, err := t.g.RemoveVertex(b.vertex); err != nil {
		return err
	}
	delete(t.buses, id)
	t.order = removeItem(t.order, b)
	vl.network.variants.Unregister(b.state)
	vl.network.unregister(b)
	b.removed = true
	vl.invalidateAll()
	vl.network.Logger(ctx).Info("configured bus removed", "id", id, "voltage_level", vl.id)
	return nil
}

func (t *busBreakerTopology) lookup(id string) (*ConfiguredBus, error) {
	b, ok := t.buses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrBusNotFound, id, t.vl.id)
	}
	return b, nil
}

func (t *busBreakerTopology) addSwitch(sw *Switch, bus1, bus2 string) (int, error) {
	b1, err := t.lookup(bus1)
	if err != nil {
		return -1, err
	}
	b2, err := t.lookup(bus2)
	if err != nil {
		return -1, err
	}
	return t.g.AddEdge(b1.vertex, b2.vertex, sw)
}

func (t *busBreakerTopology) removeEdge(e int) { _, _ = t.g.RemoveEdge(e) }

func (t *busBreakerTopology) attach(term *Terminal, testOnly bool) error {
	if !term.loc.IsBus() {
		return fmt.Errorf("%w: %s in bus-breaker level %q", ErrIncompatibleTerminal, term.loc, t.vl.id)
	}
	b, err := t.lookup(term.loc.BusID())
	if err != nil {
		return err
	}
	if testOnly {
		return nil
	}
	term.bus = b
	b.terminals = append(b.terminals, term)
	term.attached = true
	t.vl.invalidateAll()
	return nil
}

func (t *busBreakerTopology) detach(term *Terminal) {
	if term.bus != nil {
		term.bus.terminals = removeItem(term.bus.terminals, term)
	}
	term.attached = false
	t.vl.invalidateAll()
}

func (t *busBreakerTopology) invalidateCache(ctx context.Context, exceptBusBreakerView bool) {
	// configured buses are never cached, so exceptBusBreakerView changes nothing
	_ = t.cache.Update(ctx, func(c **busCache) { (*c).invalidate() })
}

func (t *busBreakerTopology) invalidateAll() {
	t.cache.Each(func(_ int, c *busCache) { c.invalidate() })
}

func (t *busBreakerTopology) view(ctx context.Context) (*busCache, error) {
	idx, err := t.vl.network.variants.Index(ctx)
	if err != nil {
		return nil, err
	}
	c, err := t.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c.built {
		return c, nil
	}
	start := time.Now()
	if err := t.build(idx, c); err != nil {
		return nil, err
	}
	t.vl.recordRebuild(ctx, metrics.ViewBusView, len(c.buses), start)
	return c, nil
}

// build merges configured buses joined by closed switches of variant idx and
// keeps the merged buses with at least one connected terminal.
func (t *busBreakerTopology) build(idx int, c *busCache) error {
	cut := func(_, e, _ int) traverse.Result {
		if sw, _ := t.g.EdgeObject(e); sw != nil && sw.openAt(idx) {
			return traverse.TerminatePath
		}
		return traverse.Continue
	}
	seeds := make([]int, len(t.order))
	for i, cb := range t.order {
		seeds[i] = cb.vertex
	}
	var groups [][]*ConfiguredBus
	seed := traverse.WithOnSeed(func(int) { groups = append(groups, nil) })
	collect := traverse.WithOnVertex(func(v int) {
		if b, ok := t.g.VertexObject(v); ok {
			last := len(groups) - 1
			groups[last] = append(groups[last], b)
		}
	})
	if _, err := t.g.TraverseAll(seeds, traverse.BreadthFirst, cut, seed, collect); err != nil {
		return err
	}
	for _, merged := range groups {
		bus := &CalculatedBus{id: fmt.Sprintf("%s_%d", t.vl.id, len(c.buses)), vl: t.vl, buses: merged}
		for _, b := range merged {
			for _, term := range b.terminals {
				if term.connectedAt(idx) {
					bus.terminals = append(bus.terminals, term)
					bus.busbar = bus.busbar || term.connectable.kind == BusbarSection
				}
			}
		}
		if len(bus.terminals) == 0 {
			continue
		}
		c.add(bus)
	}
	c.built = true
	return nil
}

func (t *busBreakerTopology) busView(ctx context.Context) ([]*CalculatedBus, error) {
	c, err := t.view(ctx)
	if err != nil {
		return nil, err
	}
	return append([]*CalculatedBus(nil), c.buses...), nil
}

func (t *busBreakerTopology) busBreakerView(context.Context) ([]Bus, error) {
	out := make([]Bus, len(t.order))
	for i, b := range t.order {
		out[i] = b
	}
	return out, nil
}

func (t *busBreakerTopology) isConnected(ctx context.Context, term *Terminal) (bool, error) {
	st, err := term.state.Get(ctx)
	return st.Connected, err
}

func (t *busBreakerTopology) terminalBus(ctx context.Context, term *Terminal) (*CalculatedBus, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || !connected {
		return nil, err
	}
	c, err := t.view(ctx)
	if err != nil {
		return nil, err
	}
	return c.byBus[term.bus], nil
}

func (t *busBreakerTopology) terminalBusBreakerBus(ctx context.Context, term *Terminal) (Bus, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || !connected {
		return nil, err
	}
	return term.bus, nil
}

// connectingElements flips the terminal flag; switches are never operated
// in a bus-breaker level, so filter is unused.
func (t *busBreakerTopology) connectingElements(ctx context.Context, term *Terminal, _ SwitchFilter) (*ConnectionElements, bool, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || connected {
		return nil, false, err
	}
	ce := NewConnectionElements()
	ce.AddTerminal(term)
	return ce, true, nil
}

func (t *busBreakerTopology) disconnectingElements(ctx context.Context, term *Terminal, _ SwitchFilter) (*ConnectionElements, bool, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || !connected {
		return nil, false, err
	}
	ce := NewConnectionElements()
	ce.AddTerminal(term)
	return ce, true, nil
}
