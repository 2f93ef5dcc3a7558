package network

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/traverse"
)

// ComponentKind selects the bus partition.
type ComponentKind int

const (
	// Connected components join buses through branches and HVDC lines.
	Connected ComponentKind = iota
	// Synchronous components join buses through branches only.
	Synchronous
)

func (k ComponentKind) String() string {
	switch k {
	case Connected:
		return "CONNECTED"
	case Synchronous:
		return "SYNCHRONOUS"
	default:
		return fmt.Sprintf("ComponentKind(%d)", int(k))
	}
}

// Component is one part of a bus partition. Numbers follow the order in
// which voltage levels and their buses were created.
type Component struct {
	kind  ComponentKind
	num   int
	buses []*CalculatedBus
}

// Kind returns the partition kind.
func (c *Component) Kind() ComponentKind { return c.kind }

// Num returns the component number.
func (c *Component) Num() int { return c.num }

// Size returns the number of buses.
func (c *Component) Size() int { return len(c.buses) }

// Buses returns the buses of the component.
func (c *Component) Buses() []*CalculatedBus { return append([]*CalculatedBus(nil), c.buses...) }

type componentSet struct {
	components []*Component
	byBus      map[*CalculatedBus]*Component
}

// componentCache is the per-variant memo of both partitions.
type componentCache struct {
	connected   *componentSet
	synchronous *componentSet
}

func (c *componentCache) invalidate() {
	if c == nil {
		return
	}
	c.connected, c.synchronous = nil, nil
}

// ConnectedComponents partitions the bus view buses of the working variant.
func (n *Network) ConnectedComponents(ctx context.Context) ([]*Component, error) {
	set, err := n.componentSet(ctx, Connected)
	if err != nil {
		return nil, err
	}
	return append([]*Component(nil), set.components...), nil
}

// SynchronousComponents partitions the bus view buses of the working variant
// ignoring HVDC lines.
func (n *Network) SynchronousComponents(ctx context.Context) ([]*Component, error) {
	set, err := n.componentSet(ctx, Synchronous)
	if err != nil {
		return nil, err
	}
	return append([]*Component(nil), set.components...), nil
}

// ConnectedComponent returns the connected component of b.
func (b *CalculatedBus) ConnectedComponent(ctx context.Context) (*Component, error) {
	return b.component(ctx, Connected)
}

// SynchronousComponent returns the synchronous component of b.
func (b *CalculatedBus) SynchronousComponent(ctx context.Context) (*Component, error) {
	return b.component(ctx, Synchronous)
}

func (b *CalculatedBus) component(ctx context.Context, kind ComponentKind) (*Component, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	set, err := b.vl.network.componentSet(ctx, kind)
	if err != nil {
		return nil, err
	}
	// building the partition may rebuild views; b must still be current
	if err := b.check(); err != nil {
		return nil, err
	}
	comp, ok := set.byBus[b]
	if !ok {
		return nil, fmt.Errorf("%w: bus %s is not in the working variant", ErrNotFound, b.id)
	}
	return comp, nil
}

func (n *Network) componentSet(ctx context.Context, kind ComponentKind) (*componentSet, error) {
	cache, err := n.components.Get(ctx)
	if err != nil {
		return nil, err
	}
	slot, view := &cache.connected, metrics.ViewConnectedComponents
	if kind == Synchronous {
		slot, view = &cache.synchronous, metrics.ViewSynchronousComponents
	}
	if *slot != nil {
		return *slot, nil
	}
	start := time.Now()
	set, err := n.buildComponents(ctx, kind)
	if err != nil {
		return nil, err
	}
	*slot = set
	d := time.Since(start)
	n.metrics.RecordRebuild(view, d)
	n.Logger(ctx).Debug("components rebuilt", "kind", kind, "components", len(set.components), "duration", d)
	return set, nil
}

// buildComponents walks a transient graph whose vertices are buses and whose
// edges are branches with both ends on a bus, plus HVDC lines flagged true.
func (n *Network) buildComponents(ctx context.Context, kind ComponentKind) (*componentSet, error) {
	buses, err := n.Buses(ctx)
	if err != nil {
		return nil, err
	}
	g := graph.New[*CalculatedBus, bool](graph.WithVertexLimit(len(buses) + 1))
	vertex := make(map[*CalculatedBus]int, len(buses))
	for _, b := range buses {
		v := g.AddVertex()
		_ = g.SetVertexObject(v, b)
		vertex[b] = v
	}
	link := func(t1, t2 *Terminal, hvdc bool) error {
		if !t1.attached || !t2.attached {
			return nil
		}
		b1, err := t1.Bus(ctx)
		if err != nil {
			return err
		}
		b2, err := t2.Bus(ctx)
		if err != nil {
			return err
		}
		if b1 == nil || b2 == nil {
			return nil
		}
		_, err = g.AddEdge(vertex[b1], vertex[b2], hvdc)
		return err
	}
	for _, c := range n.connectables {
		if !c.kind.IsBranch() {
			continue
		}
		if err := link(c.terminals[0], c.terminals[1], false); err != nil {
			return nil, err
		}
	}
	for _, h := range n.hvdcLines {
		if err := link(h.stations[0].terminals[0], h.stations[1].terminals[0], true); err != nil {
			return nil, err
		}
	}

	cross := func(_, e, _ int) traverse.Result {
		if hvdc, _ := g.EdgeObject(e); hvdc && kind == Synchronous {
			return traverse.TerminatePath
		}
		return traverse.Continue
	}
	set := &componentSet{byBus: make(map[*CalculatedBus]*Component, len(buses))}
	seeds := make([]int, len(buses))
	for i, b := range buses {
		seeds[i] = vertex[b]
	}
	var comp *Component
	seed := traverse.WithOnSeed(func(int) {
		comp = &Component{kind: kind, num: len(set.components)}
		set.components = append(set.components, comp)
	})
	collect := traverse.WithOnVertex(func(v int) {
		obj, _ := g.VertexObject(v)
		comp.buses = append(comp.buses, obj)
		set.byBus[obj] = comp
	})
	if _, err := g.TraverseAll(seeds, traverse.BreadthFirst, cross, seed, collect); err != nil {
		return nil, err
	}
	return set, nil
}
