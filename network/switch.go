package network

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/netmodel/variant"
)

// SwitchSpec describes a switch to create. Node-breaker levels use Node1 and
// Node2, bus-breaker levels Bus1 and Bus2.
type SwitchSpec struct {
	ID         string
	Kind       SwitchKind
	Node1      int
	Node2      int
	Bus1       string
	Bus2       string
	Open       bool
	Retained   bool
	Fictitious bool
}

// Switch is an edge of a voltage level graph with a per-variant open state.
type Switch struct {
	id         string
	vl         *VoltageLevel
	kind       SwitchKind
	fictitious bool
	retained   bool
	edge       int
	open       *variant.Array[bool]
	removed    bool
}

// NewSwitch creates a switch between two nodes (node-breaker) or two
// configured buses (bus-breaker). Missing nodes are created.
func (vl *VoltageLevel) NewSwitch(spec SwitchSpec) (*Switch, error) {
	if err := vl.checkLive(); err != nil {
		return nil, err
	}
	n := vl.network
	if err := checkID(n.index, spec.ID); err != nil {
		return nil, err
	}
	sw := &Switch{
		id:         spec.ID,
		vl:         vl,
		kind:       spec.Kind,
		fictitious: spec.Fictitious,
		retained:   spec.Retained && vl.kind == NodeBreaker,
	}
	open := spec.Open
	sw.open = variant.NewArray(n.variants, n.variants.Size(), func() bool { return open })

	var err error
	switch vl.kind {
	case NodeBreaker:
		sw.edge, err = vl.nb.addSwitch(sw, spec.Node1, spec.Node2)
	default:
		sw.edge, err = vl.bb.addSwitch(sw, spec.Bus1, spec.Bus2)
	}
	if err != nil {
		return nil, err
	}
	if err := n.variants.Register(sw.open); err != nil {
		vl.topoRemoveEdge(sw)
		return nil, err
	}
	if err := n.register(sw); err != nil {
		n.variants.Unregister(sw.open)
		vl.topoRemoveEdge(sw)
		return nil, err
	}
	vl.switches = append(vl.switches, sw)
	return sw, nil
}

// RemoveSwitch deletes sw from vl.
func (vl *VoltageLevel) RemoveSwitch(ctx context.Context, sw *Switch) error {
	if sw == nil || sw.vl != vl || sw.removed {
		return fmt.Errorf("%w: switch", ErrNotFound)
	}
	vl.topoRemoveEdge(sw)
	vl.network.Logger(ctx).Info("switch removed", "id", sw.id, "voltage_level", vl.id)
	return nil
}

// dropSwitch releases the state and the id of a switch whose edge is leaving
// the topology graph. Switches that never completed registration are skipped.
func (vl *VoltageLevel) dropSwitch(sw *Switch) {
	if sw == nil || sw.removed || !slices.Contains(vl.switches, sw) {
		return
	}
	vl.network.variants.Unregister(sw.open)
	vl.switches = removeItem(vl.switches, sw)
	vl.network.unregister(sw)
	sw.removed = true
}

func (vl *VoltageLevel) topoRemoveEdge(sw *Switch) {
	if vl.nb != nil {
		vl.nb.removeEdge(sw.edge)
		return
	}
	vl.bb.removeEdge(sw.edge)
}

func (vl *VoltageLevel) topoRemoveAllEdges() {
	if vl.nb != nil {
		vl.nb.g.RemoveAllEdges()
		return
	}
	vl.bb.g.RemoveAllEdges()
}

// ID returns the switch id.
func (s *Switch) ID() string { return s.id }

// VoltageLevel returns the voltage level of the switch.
func (s *Switch) VoltageLevel() *VoltageLevel { return s.vl }

// Kind returns the switch kind.
func (s *Switch) Kind() SwitchKind { return s.kind }

// Fictitious reports whether the switch is fictitious.
func (s *Switch) Fictitious() bool { return s.fictitious }

// Retained reports whether the switch is kept in the bus-breaker view of a
// node-breaker level.
func (s *Switch) Retained() bool { return s.retained }

// Ends returns the locations joined by the switch.
func (s *Switch) Ends() (Location, Location) {
	if s.vl.nb != nil {
		g := s.vl.nb.g
		return AtNode(g.EdgeVertex1(s.edge)), AtNode(g.EdgeVertex2(s.edge))
	}
	g := s.vl.bb.g
	b1, _ := g.VertexObject(g.EdgeVertex1(s.edge))
	b2, _ := g.VertexObject(g.EdgeVertex2(s.edge))
	return AtBus(b1.id), AtBus(b2.id)
}

// IsOpen returns the state of the working variant.
func (s *Switch) IsOpen(ctx context.Context) (bool, error) {
	return s.open.Get(ctx)
}

func (s *Switch) openAt(i int) bool {
	v, _ := s.open.At(i)
	return v
}

// SetOpen changes the state of the working variant and invalidates the
// views depending on it. Retained switches keep the bus-breaker view.
func (s *Switch) SetOpen(ctx context.Context, open bool) error {
	if s.removed {
		return fmt.Errorf("%w: switch %q", ErrRemoved, s.id)
	}
	old, err := s.open.Get(ctx)
	if err != nil {
		return err
	}
	if old == open {
		return nil
	}
	if err := s.open.Set(ctx, open); err != nil {
		return err
	}
	s.vl.InvalidateCache(ctx, s.retained || s.vl.kind == BusBreaker)
	s.vl.network.notifyUpdate(ctx, s, "open", old, open)
	return nil
}

// SetRetained changes the retained flag of a node-breaker switch; the
// bus-breaker view of every variant is invalidated.
func (s *Switch) SetRetained(ctx context.Context, retained bool) error {
	if err := s.vl.requireKind(NodeBreaker); err != nil {
		return err
	}
	if s.retained == retained {
		return nil
	}
	old := s.retained
	s.retained = retained
	s.vl.invalidateAll()
	s.vl.network.notifyUpdate(ctx, s, "retained", old, retained)
	return nil
}

func (s *Switch) String() string { return s.id }
