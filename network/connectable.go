package network

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netmodel/metrics"
	"github.com/katalvlaran/netmodel/referrer"
	"github.com/katalvlaran/netmodel/variant"
)

// Topology operation names reported to metrics.
const (
	OpAttach     = "attach"
	OpDetach     = "detach"
	OpConnect    = "connect"
	OpDisconnect = "disconnect"
	OpMove       = "move"
)

// InjectionSpec describes a one-terminal connectable.
type InjectionSpec struct {
	ID        string
	Kind      ConnectableKind
	Location  Location
	Connected bool
}

// BranchSpec describes a two-terminal connectable.
type BranchSpec struct {
	ID   string
	Kind ConnectableKind
	End1 TerminalSpec
	End2 TerminalSpec
}

// Connectable is a piece of equipment with one (injection) or two (branch)
// terminals.
type Connectable struct {
	id         string
	kind       ConnectableKind
	network    *Network
	terminals  []*Terminal
	states     *variant.Group
	scope      referrer.Scope
	limits     ReactiveLimits
	regulation *RegulatingPoint
	hvdc       *HvdcLine
	removed    bool
}

// NewInjection creates a one-terminal connectable in vl.
func (vl *VoltageLevel) NewInjection(ctx context.Context, spec InjectionSpec) (*Connectable, error) {
	if err := vl.checkLive(); err != nil {
		return nil, err
	}
	if spec.Kind.IsBranch() {
		return nil, fmt.Errorf("%w: %v is a branch", ErrWrongConnectableKind, spec.Kind)
	}
	n := vl.network
	if err := checkID(n.index, spec.ID); err != nil {
		return nil, err
	}
	c := &Connectable{id: spec.ID, kind: spec.Kind, network: n}
	t := newTerminal(c, One, TerminalSpec{VoltageLevel: vl, Location: spec.Location, Connected: spec.Connected})
	if err := n.addConnectable(ctx, c, t); err != nil {
		return nil, err
	}
	return c, nil
}

// NewBranch creates a two-terminal connectable, possibly across voltage
// levels.
func (n *Network) NewBranch(ctx context.Context, spec BranchSpec) (*Connectable, error) {
	if !spec.Kind.IsBranch() {
		return nil, fmt.Errorf("%w: %v is not a branch", ErrWrongConnectableKind, spec.Kind)
	}
	for _, end := range []TerminalSpec{spec.End1, spec.End2} {
		if end.VoltageLevel == nil || end.VoltageLevel.network != n {
			return nil, fmt.Errorf("%w: voltage level of %q", ErrNotFound, spec.ID)
		}
		if err := end.VoltageLevel.checkLive(); err != nil {
			return nil, err
		}
	}
	if err := checkID(n.index, spec.ID); err != nil {
		return nil, err
	}
	c := &Connectable{id: spec.ID, kind: spec.Kind, network: n}
	t1 := newTerminal(c, One, spec.End1)
	t2 := newTerminal(c, Two, spec.End2)
	if spec.End1.VoltageLevel == spec.End2.VoltageLevel && spec.End1.Location == spec.End2.Location &&
		spec.End1.Location.IsNode() {
		return nil, fmt.Errorf("%w: both ends of %q on %s", ErrNodeOccupied, spec.ID, spec.End1.Location)
	}
	if err := n.addConnectable(ctx, c, t1, t2); err != nil {
		return nil, err
	}
	return c, nil
}

// addConnectable validates every attachment first, then registers and
// attaches.
func (n *Network) addConnectable(ctx context.Context, c *Connectable, terms ...*Terminal) error {
	for _, t := range terms {
		if err := t.vl.topo.attach(t, true); err != nil {
			n.metrics.RecordTopologyOperation(OpAttach, metrics.ResultError)
			return err
		}
	}
	c.terminals = terms
	c.states = variant.NewGroup()
	for _, t := range terms {
		c.states.Add(t.state)
	}
	if err := n.variants.Register(c.states); err != nil {
		return err
	}
	if err := n.register(c); err != nil {
		n.variants.Unregister(c.states)
		return err
	}
	for _, t := range terms {
		if err := t.vl.topo.attach(t, false); err != nil {
			// validated above; reaching this means the graph changed underneath
			return err
		}
		if !containsItem(t.vl.connectables, c) {
			t.vl.connectables = append(t.vl.connectables, c)
		}
		n.metrics.RecordTopologyOperation(OpAttach, metrics.ResultOK)
	}
	n.connectables = append(n.connectables, c)
	if c.kind.regulates() {
		c.regulation = newRegulatingPoint(c, terms[0])
	}
	if c.kind.hasReactiveLimits() {
		c.limits = unboundedLimits()
	}
	n.Logger(ctx).Debug("connectable created", "id", c.id, "kind", c.kind)
	return nil
}

// ID returns the connectable id.
func (c *Connectable) ID() string { return c.id }

// Kind returns the equipment kind.
func (c *Connectable) Kind() ConnectableKind { return c.kind }

// Network returns the owning network.
func (c *Connectable) Network() *Network { return c.network }

// Terminals returns the terminals ordered by side.
func (c *Connectable) Terminals() []*Terminal { return append([]*Terminal(nil), c.terminals...) }

// Terminal returns the terminal on side.
func (c *Connectable) Terminal(side Side) (*Terminal, error) {
	i := int(side) - 1
	if i < 0 || i >= len(c.terminals) {
		return nil, fmt.Errorf("%w: %v of %q", ErrInvalidSide, side, c.id)
	}
	return c.terminals[i], nil
}

// Removed reports whether Remove has completed.
func (c *Connectable) Removed() bool { return c.removed }

// HvdcLine returns the HVDC line using a converter station, nil otherwise.
func (c *Connectable) HvdcLine() *HvdcLine { return c.hvdc }

// RegulatingPoint returns the regulation target of a regulating equipment,
// nil for other kinds.
func (c *Connectable) RegulatingPoint() *RegulatingPoint { return c.regulation }

// ReactiveLimits returns the reactive limits of a generator, battery or
// converter station.
func (c *Connectable) ReactiveLimits() (ReactiveLimits, error) {
	if !c.kind.hasReactiveLimits() {
		return nil, fmt.Errorf("%w: %v has no reactive limits", ErrWrongConnectableKind, c.kind)
	}
	return c.limits, nil
}

// SetReactiveLimits replaces the reactive limits.
func (c *Connectable) SetReactiveLimits(ctx context.Context, l ReactiveLimits) error {
	if !c.kind.hasReactiveLimits() {
		return fmt.Errorf("%w: %v has no reactive limits", ErrWrongConnectableKind, c.kind)
	}
	if l == nil {
		l = unboundedLimits()
	}
	old := c.limits
	c.limits = l
	c.network.notifyUpdate(ctx, c, "reactiveLimits", old, l)
	return nil
}

// Refer registers r as a referrer of t for as long as c exists.
func (c *Connectable) Refer(t *Terminal, r referrer.Referrer[*Terminal]) {
	referrer.Bind(&c.scope, c.network.referrers, t, r)
}

// Connect connects every terminal of c, closing the switches selected by
// filter (NonFictitiousBreaker when nil). Nothing changes unless every
// terminal can be connected. It returns false when nothing was done.
func (c *Connectable) Connect(ctx context.Context, filter SwitchFilter) (bool, error) {
	if filter == nil {
		filter = NonFictitiousBreaker
	}
	return c.operate(ctx, c.terminals, filter, true)
}

// Disconnect disconnects every terminal of c, opening switches selected by
// filter (AnyBreaker when nil).
func (c *Connectable) Disconnect(ctx context.Context, filter SwitchFilter) (bool, error) {
	if filter == nil {
		filter = AnyBreaker
	}
	return c.operate(ctx, c.terminals, filter, false)
}

func (c *Connectable) operate(ctx context.Context, terms []*Terminal, filter SwitchFilter, connect bool) (bool, error) {
	op := OpDisconnect
	if connect {
		op = OpConnect
	}
	m := c.network.metrics
	if c.removed {
		return false, fmt.Errorf("%w: %q", ErrRemoved, c.id)
	}
	merged := NewConnectionElements()
	for _, t := range terms {
		if err := t.checkAttached(); err != nil {
			m.RecordTopologyOperation(op, metrics.ResultError)
			return false, err
		}
		var (
			ce  *ConnectionElements
			ok  bool
			err error
		)
		if connect {
			ce, ok, err = t.vl.topo.connectingElements(ctx, t, filter)
		} else {
			ce, ok, err = t.vl.topo.disconnectingElements(ctx, t, filter)
		}
		if err != nil {
			m.RecordTopologyOperation(op, metrics.ResultError)
			return false, err
		}
		if ok {
			merged.Merge(ce)
			continue
		}
		state, err := t.vl.topo.isConnected(ctx, t)
		if err != nil {
			return false, err
		}
		if state != connect {
			// no eligible switch for this terminal
			m.RecordTopologyOperation(op, metrics.ResultNoop)
			return false, nil
		}
	}
	if merged.Empty() {
		m.RecordTopologyOperation(op, metrics.ResultNoop)
		return false, nil
	}
	if err := merged.apply(ctx, connect); err != nil {
		m.RecordTopologyOperation(op, metrics.ResultError)
		return false, err
	}
	m.RecordTopologyOperation(op, metrics.ResultOK)
	c.network.Logger(ctx).Debug(op, "id", c.id,
		"switches", len(merged.switches), "terminals", len(merged.terminals))
	return true, nil
}

// MoveTerminal re-creates the terminal on side at a new place. Per-variant
// P and Q follow; referrers of the old terminal move to the new one.
func (c *Connectable) MoveTerminal(ctx context.Context, side Side, spec TerminalSpec) (*Terminal, error) {
	if c.removed {
		return nil, fmt.Errorf("%w: %q", ErrRemoved, c.id)
	}
	old, err := c.Terminal(side)
	if err != nil {
		return nil, err
	}
	n := c.network
	if spec.VoltageLevel == nil || spec.VoltageLevel.network != n {
		return nil, fmt.Errorf("%w: voltage level for %q", ErrNotFound, c.id)
	}
	if err := spec.VoltageLevel.checkLive(); err != nil {
		return nil, err
	}
	nt := newTerminal(c, side, spec)
	keepFlag := old.vl.kind == BusBreaker && spec.VoltageLevel.kind == BusBreaker
	old.state.Each(func(i int, st terminalState) {
		if !keepFlag {
			st.Connected = spec.Connected
		}
		_ = nt.state.SetAt(i, st)
	})
	if err := nt.vl.topo.attach(nt, true); err != nil {
		n.metrics.RecordTopologyOperation(OpMove, metrics.ResultError)
		return nil, err
	}

	if old.attached {
		old.vl.topo.detach(old)
	}
	if err := nt.vl.topo.attach(nt, false); err != nil {
		return nil, err
	}
	c.terminals[side-1] = nt
	n.variants.Unregister(c.states)
	c.states = variant.NewGroup()
	for _, t := range c.terminals {
		c.states.Add(t.state)
	}
	if err := n.variants.Register(c.states); err != nil {
		return nil, err
	}
	c.syncVoltageLevels(old.vl, nt.vl)
	if c.regulation != nil && c.regulation.local == old {
		c.regulation.local = nt
	}

	notified := n.referrers.NotifyReplacement(old, nt)
	n.metrics.RecordNotifications(referrer.KindReplacement, notified)
	n.metrics.RecordTopologyOperation(OpMove, metrics.ResultOK)
	n.notifyUpdate(ctx, c, nt.attr("location"), old.loc, nt.loc)
	return nt, nil
}

// syncVoltageLevels keeps the connectable lists of from and to consistent
// after a terminal moved between them.
func (c *Connectable) syncVoltageLevels(from, to *VoltageLevel) {
	if from == to {
		return
	}
	still := false
	for _, t := range c.terminals {
		if t.vl == from {
			still = true
		}
	}
	if !still {
		from.connectables = removeItem(from.connectables, c)
	}
	if !containsItem(to.connectables, c) {
		to.connectables = append(to.connectables, c)
	}
}

// Remove deletes c. Referrers of its terminals are notified first, then the
// terminals are detached, per-variant state is released, the registrations
// c made are closed, and c leaves the index. A converter station used by an
// HVDC line is refused.
func (c *Connectable) Remove(ctx context.Context) error {
	if c.removed {
		return fmt.Errorf("%w: %q", ErrRemoved, c.id)
	}
	if c.hvdc != nil {
		return fmt.Errorf("%w: %q by %q", ErrStationInUse, c.id, c.hvdc.id)
	}
	n := c.network
	notified := 0
	for _, t := range c.terminals {
		notified += n.referrers.NotifyRemoval(t)
	}
	n.metrics.RecordNotifications(referrer.KindRemoval, notified)

	for _, t := range c.terminals {
		if t.attached {
			t.vl.topo.detach(t)
			n.metrics.RecordTopologyOperation(OpDetach, metrics.ResultOK)
		}
		t.vl.connectables = removeItem(t.vl.connectables, c)
	}
	n.variants.Unregister(c.states)
	c.scope.Close()

	n.connectables = removeItem(n.connectables, c)
	n.unregister(c)
	c.removed = true
	n.Logger(ctx).Info("connectable removed", "id", c.id, "kind", c.kind, "referrers", notified)
	return nil
}

func (c *Connectable) String() string { return c.id }

func containsItem[T comparable](s []T, x T) bool {
	for _, cur := range s {
		if cur == x {
			return true
		}
	}
	return false
}
