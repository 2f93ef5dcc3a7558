package network

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/netmodel/traverse"
	"github.com/katalvlaran/netmodel/variant"
)

// TerminalSpec places one terminal. Connected is the initial flag of a
// bus-breaker terminal; node-breaker terminals derive connectivity from
// switches.
type TerminalSpec struct {
	VoltageLevel *VoltageLevel
	Location     Location
	Connected    bool
}

type terminalState struct {
	P         float64
	Q         float64
	Connected bool
}

// Terminal is the attachment point of a connectable in a voltage level.
type Terminal struct {
	connectable *Connectable
	side        Side
	vl          *VoltageLevel
	loc         Location
	bus         *ConfiguredBus
	state       *variant.Array[terminalState]
	attached    bool
}

func newTerminal(c *Connectable, side Side, spec TerminalSpec) *Terminal {
	m := c.network.variants
	init := terminalState{P: nan(), Q: nan(), Connected: spec.Connected}
	return &Terminal{
		connectable: c,
		side:        side,
		vl:          spec.VoltageLevel,
		loc:         spec.Location,
		state:       variant.NewArray(m, m.Size(), func() terminalState { return init }),
	}
}

// Connectable returns the owner of the terminal.
func (t *Terminal) Connectable() *Connectable { return t.connectable }

// Side returns the side of the terminal on its connectable.
func (t *Terminal) Side() Side { return t.side }

// VoltageLevel returns the voltage level the terminal is placed in.
func (t *Terminal) VoltageLevel() *VoltageLevel { return t.vl }

// Location returns the node or configured bus of the terminal. It is kept
// after detachment.
func (t *Terminal) Location() Location { return t.loc }

// Attached reports whether the terminal is bound to its voltage level.
func (t *Terminal) Attached() bool { return t.attached }

func (t *Terminal) String() string {
	return fmt.Sprintf("%s/%s", t.connectable.id, t.side)
}

func (t *Terminal) checkAttached() error {
	if !t.attached {
		return fmt.Errorf("%w: %s", ErrTerminalDetached, t)
	}
	return nil
}

// P returns the active power of the working variant (NaN when unset).
func (t *Terminal) P(ctx context.Context) (float64, error) {
	st, err := t.state.Get(ctx)
	return st.P, err
}

// SetP sets the active power of the working variant.
func (t *Terminal) SetP(ctx context.Context, p float64) error {
	var old float64
	if err := t.state.Update(ctx, func(s *terminalState) { old, s.P = s.P, p }); err != nil {
		return err
	}
	t.vl.network.notifyUpdate(ctx, t.connectable, t.attr("p"), old, p)
	return nil
}

// Q returns the reactive power of the working variant (NaN when unset).
func (t *Terminal) Q(ctx context.Context) (float64, error) {
	st, err := t.state.Get(ctx)
	return st.Q, err
}

// SetQ sets the reactive power of the working variant.
func (t *Terminal) SetQ(ctx context.Context, q float64) error {
	var old float64
	if err := t.state.Update(ctx, func(s *terminalState) { old, s.Q = s.Q, q }); err != nil {
		return err
	}
	t.vl.network.notifyUpdate(ctx, t.connectable, t.attr("q"), old, q)
	return nil
}

func (t *Terminal) connectedAt(i int) bool {
	st, _ := t.state.At(i)
	return st.Connected
}

func (t *Terminal) setConnected(ctx context.Context, connected bool) error {
	var old bool
	if err := t.state.Update(ctx, func(s *terminalState) { old, s.Connected = s.Connected, connected }); err != nil {
		return err
	}
	if old == connected {
		return nil
	}
	t.vl.InvalidateCache(ctx, true)
	t.vl.network.notifyUpdate(ctx, t.connectable, t.attr("connected"), old, connected)
	return nil
}

// IsConnected reports whether the terminal is connected in the working
// variant.
func (t *Terminal) IsConnected(ctx context.Context) (bool, error) {
	if err := t.checkAttached(); err != nil {
		return false, err
	}
	return t.vl.topo.isConnected(ctx, t)
}

// Connect connects this terminal only; see Connectable.Connect.
func (t *Terminal) Connect(ctx context.Context, filter SwitchFilter) (bool, error) {
	if filter == nil {
		filter = NonFictitiousBreaker
	}
	return t.connectable.operate(ctx, []*Terminal{t}, filter, true)
}

// Disconnect disconnects this terminal only; see Connectable.Disconnect.
func (t *Terminal) Disconnect(ctx context.Context, filter SwitchFilter) (bool, error) {
	if filter == nil {
		filter = AnyBreaker
	}
	return t.connectable.operate(ctx, []*Terminal{t}, filter, false)
}

// Bus returns the bus view bus of the terminal, nil when disconnected.
func (t *Terminal) Bus(ctx context.Context) (*CalculatedBus, error) {
	if err := t.checkAttached(); err != nil {
		return nil, err
	}
	return t.vl.topo.terminalBus(ctx, t)
}

// BusBreakerBus returns the bus-breaker view bus of the terminal, nil when
// disconnected (bus-breaker) or isolated (node-breaker).
func (t *Terminal) BusBreakerBus(ctx context.Context) (Bus, error) {
	if err := t.checkAttached(); err != nil {
		return nil, err
	}
	return t.vl.topo.terminalBusBreakerBus(ctx, t)
}

// ConnectableBus returns the configured bus of a bus-breaker terminal
// whether connected or not.
func (t *Terminal) ConnectableBus() (*ConfiguredBus, error) {
	if err := t.vl.requireKind(BusBreaker); err != nil {
		return nil, err
	}
	if err := t.checkAttached(); err != nil {
		return nil, err
	}
	return t.bus, nil
}

// TerminalTraverser steers Terminal.Traverse. Each method is called at most
// once per terminal or switch; a second arrival reuses the first answer.
type TerminalTraverser interface {
	// Terminal is called for every terminal reached, the start excluded.
	// Continue also crosses to the other terminals of its connectable.
	Terminal(t *Terminal) traverse.Result

	// Switch is called before the walk crosses sw; open is its state in the
	// working variant. Internal connections are always crossed.
	Switch(sw *Switch, open bool) traverse.Result
}

// TraverserFuncs adapts plain functions to a TerminalTraverser. A nil field
// continues.
type TraverserFuncs struct {
	OnTerminal func(t *Terminal) traverse.Result
	OnSwitch   func(sw *Switch, open bool) traverse.Result
}

// Terminal implements TerminalTraverser.
func (f TraverserFuncs) Terminal(t *Terminal) traverse.Result {
	if f.OnTerminal == nil {
		return traverse.Continue
	}
	return f.OnTerminal(t)
}

// Switch implements TerminalTraverser.
func (f TraverserFuncs) Switch(sw *Switch, open bool) traverse.Result {
	if f.OnSwitch == nil {
		return traverse.Continue
	}
	return f.OnSwitch(sw, open)
}

// Traverse walks the equipment reachable from t. Inside a node-breaker level
// it follows switches and internal connections node by node; inside a
// bus-breaker level it follows switches between configured buses and reaches
// the connected terminals of every bus it enters. From each terminal fn lets
// through it crosses to the other terminals of the same connectable.
// It returns false when fn stopped the walk.
//
// Complexity: O(V+E) over the levels entered.
func (t *Terminal) Traverse(ctx context.Context, fn TerminalTraverser) (bool, error) {
	if err := t.checkAttached(); err != nil {
		return false, err
	}
	if fn == nil {
		fn = TraverserFuncs{}
	}
	idx, err := t.vl.network.variants.Index(ctx)
	if err != nil {
		return false, err
	}
	w := &terminalWalk{
		fn:          fn,
		idx:         idx,
		terminals:   map[*Terminal]traverse.Result{t: traverse.Continue},
		switches:    make(map[*Switch]traverse.Result),
		encountered: make(map[*VoltageLevel][]bool),
		queue:       []*Terminal{t},
	}
	for len(w.queue) > 0 && !w.stopped {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		if err := w.level(cur); err != nil {
			return false, err
		}
		for _, o := range cur.connectable.terminals {
			if w.stopped {
				break
			}
			if o != cur && o.attached {
				w.terminal(o)
			}
		}
	}
	return !w.stopped, nil
}

// terminalWalk is the state of one Terminal.Traverse call. encountered holds
// one vertex set per level so that a level entered twice is not re-walked.
type terminalWalk struct {
	fn          TerminalTraverser
	idx         int
	terminals   map[*Terminal]traverse.Result
	switches    map[*Switch]traverse.Result
	encountered map[*VoltageLevel][]bool
	queue       []*Terminal
	stopped     bool
}

func (w *terminalWalk) terminal(term *Terminal) traverse.Result {
	if r, ok := w.terminals[term]; ok {
		return r
	}
	r := w.fn.Terminal(term)
	w.terminals[term] = r
	switch r {
	case traverse.Continue:
		w.queue = append(w.queue, term)
	case traverse.TerminateTraverser:
		w.stopped = true
	}
	return r
}

func (w *terminalWalk) crossSwitch(sw *Switch) traverse.Result {
	if sw == nil {
		return traverse.Continue
	}
	if r, ok := w.switches[sw]; ok {
		return r
	}
	r := w.fn.Switch(sw, sw.openAt(w.idx))
	w.switches[sw] = r
	if r == traverse.TerminateTraverser {
		w.stopped = true
	}
	return r
}

func (w *terminalWalk) seen(vl *VoltageLevel, capacity int) []bool {
	enc := w.encountered[vl]
	if len(enc) < capacity {
		grown := make([]bool, capacity)
		copy(grown, enc)
		enc = grown
		w.encountered[vl] = enc
	}
	return enc
}

// level walks the voltage level of cur from cur's node or configured bus.
func (w *terminalWalk) level(cur *Terminal) error {
	vl := cur.vl
	if vl.nb != nil {
		g := vl.nb.g
		step := func(_, e, to int) traverse.Result {
			sw, _ := g.EdgeObject(e)
			if r := w.crossSwitch(sw); r != traverse.Continue {
				return r
			}
			if term, ok := g.VertexObject(to); ok {
				return w.terminal(term)
			}
			return traverse.Continue
		}
		_, err := g.Traverse(cur.loc.Node(), traverse.DepthFirst, step, w.seen(vl, g.VertexCapacity()))
		return err
	}

	if cur.bus == nil || !cur.connectedAt(w.idx) {
		return nil
	}
	g := vl.bb.g
	var reached []*ConfiguredBus
	step := func(_, e, _ int) traverse.Result {
		sw, _ := g.EdgeObject(e)
		return w.crossSwitch(sw)
	}
	collect := traverse.WithOnVertex(func(v int) {
		if b, ok := g.VertexObject(v); ok {
			reached = append(reached, b)
		}
	})
	if _, err := g.Traverse(cur.bus.vertex, traverse.BreadthFirst, step, w.seen(vl, g.VertexCapacity()), collect); err != nil {
		return err
	}
	for _, b := range reached {
		for _, term := range b.terminals {
			if w.stopped {
				return nil
			}
			if term.connectedAt(w.idx) {
				w.terminal(term)
			}
		}
	}
	return nil
}

// attr names a terminal attribute for listeners: "p" for an injection, "p1"
// or "p2" for a branch.
func (t *Terminal) attr(name string) string {
	if !t.connectable.kind.IsBranch() {
		return name
	}
	return fmt.Sprintf("%s%d", name, int(t.side))
}

func nan() float64 { return math.NaN() }
