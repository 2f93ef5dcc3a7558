package network

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/netmodel/graph"
	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/traverse"
	"github.com/katalvlaran/netmodel/variant"
)

// nbCache holds both views of one variant of a node-breaker level.
type nbCache struct {
	busView        busCache
	busBreakerView busCache
}

func (c *nbCache) invalidate(exceptBusBreakerView bool) {
	c.busView.invalidate()
	if !exceptBusBreakerView {
		c.busBreakerView.invalidate()
	}
}

// nodeBreakerTopology stores terminals on the vertices and switches on the
// edges of a graph. Internal connections are edges without a switch.
type nodeBreakerTopology struct {
	vl    *VoltageLevel
	g     *graph.Graph[*Terminal, *Switch]
	cache *variant.Array[*nbCache]
}

// structureListener drops every cached view on any structural change.
type structureListener struct {
	graph.NopListener[*Terminal, *Switch]
	vl *VoltageLevel
}

func (l structureListener) VertexObjectSet(int, *Terminal) { l.vl.invalidateAll() }
func (l structureListener) EdgeAdded(int, *Switch)         { l.vl.invalidateAll() }
func (l structureListener) EdgeRemoved(int, *Switch)       { l.vl.invalidateAll() }

// EdgeBeforeRemoval drops the switch while its edge is still in the graph.
func (l structureListener) EdgeBeforeRemoval(_ int, sw *Switch) { l.vl.dropSwitch(sw) }

func newNodeBreakerTopology(vl *VoltageLevel, limit int) *nodeBreakerTopology {
	m := vl.network.variants
	t := &nodeBreakerTopology{
		vl: vl,
		g:  graph.New[*Terminal, *Switch](graph.WithVertexLimit(limit)),
		cache: variant.NewArray[*nbCache](m, m.Size(), nil,
			variant.WithFresh(func() *nbCache { return &nbCache{} }),
			variant.WithRelease(func(c *nbCache) { c.invalidate(false) })),
	}
	t.g.AddListener(structureListener{vl: vl})
	return t
}

func (t *nodeBreakerTopology) states() variant.Stateful { return t.cache }

func (t *nodeBreakerTopology) checkNode(node int) error {
	if err := t.g.CheckVertexHandle(node); err != nil {
		return fmt.Errorf("%w: %d in %q: %v", ErrInvalidNode, node, t.vl.id, err)
	}
	return nil
}

func (t *nodeBreakerTopology) addSwitch(sw *Switch, n1, n2 int) (int, error) {
	if err := t.checkNode(n1); err != nil {
		return -1, err
	}
	if err := t.checkNode(n2); err != nil {
		return -1, err
	}
	if err := t.g.AddVertexIfNotPresent(n1); err != nil {
		return -1, err
	}
	if err := t.g.AddVertexIfNotPresent(n2); err != nil {
		return -1, err
	}
	return t.g.AddEdge(n1, n2, sw)
}

func (t *nodeBreakerTopology) removeEdge(e int) {
	if _, err := t.g.RemoveEdge(e); err == nil {
		t.g.RemoveIsolatedVertices()
	}
}

// NewInternalConnection joins two nodes with a permanently closed edge.
func (vl *VoltageLevel) NewInternalConnection(node1, node2 int) error {
	if err := vl.checkLive(); err != nil {
		return err
	}
	if err := vl.requireKind(NodeBreaker); err != nil {
		return err
	}
	_, err := vl.nb.addSwitch(nil, node1, node2)
	return err
}

// InternalConnections returns the node pairs joined by internal connections.
func (vl *VoltageLevel) InternalConnections() [][2]int {
	if vl.nb == nil {
		return nil
	}
	var out [][2]int
	g := vl.nb.g
	for _, e := range g.Edges() {
		if sw, _ := g.EdgeObject(e); sw == nil {
			out = append(out, [2]int{g.EdgeVertex1(e), g.EdgeVertex2(e)})
		}
	}
	return out
}

// Nodes returns the live nodes of a node-breaker level, ascending.
func (vl *VoltageLevel) Nodes() []int {
	if vl.nb == nil {
		return nil
	}
	return vl.nb.g.Vertices()
}

// NodeTerminal returns the terminal attached to node, if any.
func (vl *VoltageLevel) NodeTerminal(node int) (*Terminal, bool) {
	if vl.nb == nil {
		return nil, false
	}
	return vl.nb.g.VertexObject(node)
}

func (t *nodeBreakerTopology) attach(term *Terminal, testOnly bool) error {
	if !term.loc.IsNode() {
		return fmt.Errorf("%w: %s in node-breaker level %q", ErrIncompatibleTerminal, term.loc, t.vl.id)
	}
	node := term.loc.Node()
	if err := t.checkNode(node); err != nil {
		return err
	}
	if cur, ok := t.g.VertexObject(node); ok {
		return fmt.Errorf("%w: node %d of %q holds %s", ErrNodeOccupied, node, t.vl.id, cur)
	}
	if testOnly {
		return nil
	}
	if err := t.g.AddVertexIfNotPresent(node); err != nil {
		return err
	}
	if err := t.g.SetVertexObject(node, term); err != nil {
		return err
	}
	term.attached = true
	return nil
}

func (t *nodeBreakerTopology) detach(term *Terminal) {
	node := term.loc.Node()
	if cur, ok := t.g.VertexObject(node); ok && cur == term {
		_ = t.g.ClearVertexObject(node)
		t.g.RemoveIsolatedVertices()
	}
	term.attached = false
}

func (t *nodeBreakerTopology) invalidateCache(ctx context.Context, exceptBusBreakerView bool) {
	_ = t.cache.Update(ctx, func(c **nbCache) { (*c).invalidate(exceptBusBreakerView) })
}

func (t *nodeBreakerTopology) invalidateAll() {
	t.cache.Each(func(_ int, c *nbCache) { c.invalidate(false) })
}

// view returns the requested cache of the working variant, building it
// first when needed.
func (t *nodeBreakerTopology) view(ctx context.Context, busBreaker bool) (*busCache, error) {
	idx, err := t.vl.network.variants.Index(ctx)
	if err != nil {
		return nil, err
	}
	c, err := t.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	target, name := &c.busView, metrics.ViewBusView
	if busBreaker {
		target, name = &c.busBreakerView, metrics.ViewBusBreakerView
	}
	if target.built {
		return target, nil
	}
	start := time.Now()
	if err := t.build(idx, busBreaker, target); err != nil {
		return nil, err
	}
	t.vl.recordRebuild(ctx, name, len(target.buses), start)
	return target, nil
}

// build groups nodes joined by closed switches of variant idx. The bus view
// keeps groups holding at least one terminal; the bus-breaker view also cuts
// at retained switches and keeps every group.
func (t *nodeBreakerTopology) build(idx int, busBreaker bool, c *busCache) error {
	cut := func(_, e, _ int) traverse.Result {
		sw, _ := t.g.EdgeObject(e)
		if sw == nil {
			return traverse.Continue
		}
		if sw.openAt(idx) || (busBreaker && sw.retained) {
			return traverse.TerminatePath
		}
		return traverse.Continue
	}
	var groups [][]int
	seed := traverse.WithOnSeed(func(int) { groups = append(groups, nil) })
	collect := traverse.WithOnVertex(func(n int) {
		last := len(groups) - 1
		groups[last] = append(groups[last], n)
	})
	if _, err := t.g.TraverseAll(t.g.Vertices(), traverse.DepthFirst, cut, seed, collect); err != nil {
		return err
	}
	for _, nodes := range groups {
		sort.Ints(nodes)
		bus := &CalculatedBus{id: fmt.Sprintf("%s_%d", t.vl.id, nodes[0]), vl: t.vl, nodes: nodes}
		for _, n := range nodes {
			if term, ok := t.g.VertexObject(n); ok {
				bus.terminals = append(bus.terminals, term)
				bus.busbar = bus.busbar || term.connectable.kind == BusbarSection
			}
		}
		if len(bus.terminals) == 0 && !busBreaker {
			continue
		}
		c.add(bus)
	}
	c.built = true
	return nil
}

func (t *nodeBreakerTopology) busView(ctx context.Context) ([]*CalculatedBus, error) {
	c, err := t.view(ctx, false)
	if err != nil {
		return nil, err
	}
	return append([]*CalculatedBus(nil), c.buses...), nil
}

func (t *nodeBreakerTopology) busBreakerView(ctx context.Context) ([]Bus, error) {
	c, err := t.view(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]Bus, len(c.buses))
	for i, b := range c.buses {
		out[i] = b
	}
	return out, nil
}

func (t *nodeBreakerTopology) terminalBus(ctx context.Context, term *Terminal) (*CalculatedBus, error) {
	c, err := t.view(ctx, false)
	if err != nil {
		return nil, err
	}
	return c.byNode[term.loc.Node()], nil
}

func (t *nodeBreakerTopology) terminalBusBreakerBus(ctx context.Context, term *Terminal) (Bus, error) {
	c, err := t.view(ctx, true)
	if err != nil {
		return nil, err
	}
	if b, ok := c.byNode[term.loc.Node()]; ok {
		return b, nil
	}
	return nil, nil
}

// isConnected reports whether the terminal's bus reaches a busbar section.
func (t *nodeBreakerTopology) isConnected(ctx context.Context, term *Terminal) (bool, error) {
	b, err := t.terminalBus(ctx, term)
	if err != nil || b == nil {
		return false, err
	}
	return b.busbar, nil
}

func isBusbarSection(term *Terminal) bool {
	return term != nil && term.connectable.kind == BusbarSection
}

// connectingElements picks the path to a busbar section with the fewest open
// switches, then the fewest edges, among paths whose open switches all pass
// filter, and returns its open switches.
func (t *nodeBreakerTopology) connectingElements(ctx context.Context, term *Terminal, filter SwitchFilter) (*ConnectionElements, bool, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || connected {
		return nil, false, err
	}
	idx, err := t.vl.network.variants.Index(ctx)
	if err != nil {
		return nil, false, err
	}
	isOpen := func(e int) bool {
		sw, _ := t.g.EdgeObject(e)
		return sw != nil && sw.openAt(idx)
	}
	openCount := func(path []int) int {
		n := 0
		for _, e := range path {
			if isOpen(e) {
				n++
			}
		}
		return n
	}
	less := func(a, b []int) bool {
		if oa, ob := openCount(a), openCount(b); oa != ob {
			return oa < ob
		}
		return len(a) < len(b)
	}
	blocked := func(sw *Switch) bool { return sw != nil && sw.openAt(idx) && !filter(sw) }
	paths, err := t.g.FindAllPaths(term.loc.Node(), isBusbarSection, blocked, less)
	if err != nil || len(paths) == 0 {
		return nil, false, err
	}
	ce := NewConnectionElements()
	for _, e := range paths[0] {
		if isOpen(e) {
			sw, _ := t.g.EdgeObject(e)
			ce.AddSwitch(sw)
		}
	}
	return ce, true, nil
}

// disconnectingElements opens the first switch passing filter on every
// closed path to a busbar section. It fails as a whole when one path has no
// such switch.
func (t *nodeBreakerTopology) disconnectingElements(ctx context.Context, term *Terminal, filter SwitchFilter) (*ConnectionElements, bool, error) {
	connected, err := t.isConnected(ctx, term)
	if err != nil || !connected {
		return nil, false, err
	}
	idx, err := t.vl.network.variants.Index(ctx)
	if err != nil {
		return nil, false, err
	}
	open := func(sw *Switch) bool { return sw != nil && sw.openAt(idx) }
	paths, err := t.g.FindAllPaths(term.loc.Node(), isBusbarSection, open, nil)
	if err != nil || len(paths) == 0 {
		return nil, false, err
	}
	ce := NewConnectionElements()
	for _, path := range paths {
		found := false
		for _, e := range path {
			if sw, _ := t.g.EdgeObject(e); sw != nil && filter(sw) {
				ce.AddSwitch(sw)
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}
	return ce, true, nil
}
