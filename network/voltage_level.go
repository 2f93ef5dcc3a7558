package network

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/netmodel/referrer"
	"github.com/katalvlaran/netmodel/variant"
)

// VoltageLevelSpec describes a voltage level to create.
type VoltageLevelSpec struct {
	ID       string
	Kind     TopologyKind
	NominalV float64
	// NodeIndexLimit bounds nodes of a node-breaker level; <= 0 uses the
	// network default.
	NodeIndexLimit int
}

// topology is the wiring model of a voltage level.
type topology interface {
	attach(t *Terminal, testOnly bool) error
	detach(t *Terminal)
	isConnected(ctx context.Context, t *Terminal) (bool, error)
	connectingElements(ctx context.Context, t *Terminal, filter SwitchFilter) (*ConnectionElements, bool, error)
	disconnectingElements(ctx context.Context, t *Terminal, filter SwitchFilter) (*ConnectionElements, bool, error)
	invalidateCache(ctx context.Context, exceptBusBreakerView bool)
	invalidateAll()
	busView(ctx context.Context) ([]*CalculatedBus, error)
	busBreakerView(ctx context.Context) ([]Bus, error)
	terminalBus(ctx context.Context, t *Terminal) (*CalculatedBus, error)
	terminalBusBreakerBus(ctx context.Context, t *Terminal) (Bus, error)
	states() variant.Stateful
}

// VoltageLevel is a set of equipment at one nominal voltage wired either as
// a node-breaker or a bus-breaker topology.
type VoltageLevel struct {
	id         string
	network    *Network
	substation *Substation
	kind       TopologyKind
	nominalV   float64

	topo topology
	nb   *nodeBreakerTopology
	bb   *busBreakerTopology

	switches     []*Switch
	connectables []*Connectable
	dependents   referrer.Dependents[*VoltageLevel]
	removed      bool
}

// NewVoltageLevel creates a voltage level in s.
func (s *Substation) NewVoltageLevel(spec VoltageLevelSpec) (*VoltageLevel, error) {
	n := s.network
	if s.removed {
		return nil, fmt.Errorf("%w: substation %q", ErrRemoved, s.id)
	}
	if err := checkID(n.index, spec.ID); err != nil {
		return nil, err
	}
	vl := &VoltageLevel{
		id:         spec.ID,
		network:    n,
		substation: s,
		kind:       spec.Kind,
		nominalV:   spec.NominalV,
	}
	switch spec.Kind {
	case NodeBreaker:
		limit := spec.NodeIndexLimit
		if limit <= 0 {
			limit = n.nodeIndexLimit
		}
		vl.nb = newNodeBreakerTopology(vl, limit)
		vl.topo = vl.nb
	case BusBreaker:
		vl.bb = newBusBreakerTopology(vl)
		vl.topo = vl.bb
	default:
		return nil, fmt.Errorf("%w: %v", ErrWrongTopologyKind, spec.Kind)
	}
	if err := n.variants.Register(vl.topo.states()); err != nil {
		return nil, err
	}
	if err := n.register(vl); err != nil {
		n.variants.Unregister(vl.topo.states())
		return nil, err
	}
	s.voltageLevels = append(s.voltageLevels, vl)
	n.voltageLevels = append(n.voltageLevels, vl)
	return vl, nil
}

// ID returns the voltage level id.
func (vl *VoltageLevel) ID() string { return vl.id }

// Network returns the owning network.
func (vl *VoltageLevel) Network() *Network { return vl.network }

// Substation returns the owning substation.
func (vl *VoltageLevel) Substation() *Substation { return vl.substation }

// TopologyKind returns the wiring model kind.
func (vl *VoltageLevel) TopologyKind() TopologyKind { return vl.kind }

// NominalV returns the nominal voltage in kV.
func (vl *VoltageLevel) NominalV() float64 { return vl.nominalV }

// Switches returns switches in creation order.
func (vl *VoltageLevel) Switches() []*Switch { return append([]*Switch(nil), vl.switches...) }

// Connectables returns the connectables with a terminal in vl.
func (vl *VoltageLevel) Connectables() []*Connectable {
	return append([]*Connectable(nil), vl.connectables...)
}

// Buses returns the bus view: calculated buses rebuilt lazily after every
// invalidation.
func (vl *VoltageLevel) Buses(ctx context.Context) ([]*CalculatedBus, error) {
	return vl.topo.busView(ctx)
}

// BusBreakerBuses returns the bus-breaker view: configured buses of a
// bus-breaker level, calculated buses cut at open and retained switches for a
// node-breaker one.
func (vl *VoltageLevel) BusBreakerBuses(ctx context.Context) ([]Bus, error) {
	return vl.topo.busBreakerView(ctx)
}

// InvalidateCache drops the calculated buses of the working variant and the
// network components depending on them. The bus-breaker view is kept when
// exceptBusBreakerView is set.
func (vl *VoltageLevel) InvalidateCache(ctx context.Context, exceptBusBreakerView bool) {
	vl.topo.invalidateCache(ctx, exceptBusBreakerView)
	vl.network.invalidateComponents(ctx)
	vl.network.metrics.RecordInvalidation()
}

// invalidateAll drops the caches of every variant after a structural change.
func (vl *VoltageLevel) invalidateAll() {
	vl.topo.invalidateAll()
	vl.network.invalidateAllComponents()
	vl.network.metrics.RecordInvalidation()
}

// AddDependent registers r to be told when vl is removed.
func (vl *VoltageLevel) AddDependent(r referrer.Referrer[*VoltageLevel]) *referrer.Registration {
	return vl.dependents.Add(r)
}

// Remove deletes an empty voltage level: dependents are notified first, then
// switches, configured buses and caches are dropped.
func (vl *VoltageLevel) Remove(ctx context.Context) error {
	if vl.removed {
		return fmt.Errorf("%w: voltage level %q", ErrRemoved, vl.id)
	}
	if len(vl.connectables) > 0 {
		return fmt.Errorf("%w: %q has %d connectables", ErrVoltageLevelNotEmpty, vl.id, len(vl.connectables))
	}
	n := vl.network
	notified := vl.dependents.NotifyRemoval(vl)
	n.metrics.RecordNotifications(referrer.KindRemoval, notified)

	// each edge removal drops its switch
	vl.topoRemoveAllEdges()
	if vl.bb != nil {
		for _, b := range vl.bb.order {
			n.variants.Unregister(b.state)
			n.unregister(b)
			b.removed = true
		}
	}
	n.variants.Unregister(vl.topo.states())
	n.invalidateAllComponents()

	vl.substation.voltageLevels = removeItem(vl.substation.voltageLevels, vl)
	n.voltageLevels = removeItem(n.voltageLevels, vl)
	n.unregister(vl)
	vl.removed = true
	n.Logger(ctx).Info("voltage level removed", "id", vl.id, "dependents", notified)
	return nil
}

func (vl *VoltageLevel) checkLive() error {
	if vl.removed {
		return fmt.Errorf("%w: voltage level %q", ErrRemoved, vl.id)
	}
	return nil
}

func (vl *VoltageLevel) requireKind(kind TopologyKind) error {
	if vl.kind != kind {
		return fmt.Errorf("%w: %q is %v", ErrWrongTopologyKind, vl.id, vl.kind)
	}
	return nil
}

// recordRebuild reports a view rebuild to metrics and logs it.
func (vl *VoltageLevel) recordRebuild(ctx context.Context, view string, buses int, start time.Time) {
	d := time.Since(start)
	vl.network.metrics.RecordRebuild(view, d)
	vl.network.Logger(ctx).Debug("bus view rebuilt",
		"voltage_level", vl.id, "view", view, "buses", buses, "duration", d)
}
