package network

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netmodel/referrer"
)

// Area groups voltage levels, for instance a control area or a bidding zone.
// It depends on each voltage level it holds and forgets a voltage level when
// it is removed.
type Area struct {
	id            string
	areaType      string
	network       *Network
	voltageLevels []*VoltageLevel
	regs          map[*VoltageLevel]*referrer.Registration
	scope         referrer.Scope
	removed       bool
}

// NewArea creates an empty area.
func (n *Network) NewArea(id, areaType string) (*Area, error) {
	if err := checkID(n.index, id); err != nil {
		return nil, err
	}
	a := &Area{id: id, areaType: areaType, network: n, regs: make(map[*VoltageLevel]*referrer.Registration)}
	if err := n.register(a); err != nil {
		return nil, err
	}
	n.areas = append(n.areas, a)
	return a, nil
}

// ID returns the area id.
func (a *Area) ID() string { return a.id }

// Type returns the area type.
func (a *Area) Type() string { return a.areaType }

// VoltageLevels returns the voltage levels of the area in insertion order.
func (a *Area) VoltageLevels() []*VoltageLevel {
	return append([]*VoltageLevel(nil), a.voltageLevels...)
}

// AddVoltageLevel adds vl; adding it twice is a no-op.
func (a *Area) AddVoltageLevel(vl *VoltageLevel) error {
	if a.removed {
		return fmt.Errorf("%w: area %q", ErrRemoved, a.id)
	}
	if vl == nil || vl.network != a.network {
		return fmt.Errorf("%w: voltage level for area %q", ErrNotFound, a.id)
	}
	if err := vl.checkLive(); err != nil {
		return err
	}
	if _, ok := a.regs[vl]; ok {
		return nil
	}
	reg := vl.AddDependent(a)
	a.scope.Track(reg)
	a.regs[vl] = reg
	a.voltageLevels = append(a.voltageLevels, vl)
	return nil
}

// RemoveVoltageLevel drops vl from the area.
func (a *Area) RemoveVoltageLevel(vl *VoltageLevel) {
	reg, ok := a.regs[vl]
	if !ok {
		return
	}
	reg.Release()
	delete(a.regs, vl)
	a.voltageLevels = removeItem(a.voltageLevels, vl)
}

// OnReferencedRemoval forgets a removed voltage level.
func (a *Area) OnReferencedRemoval(vl *VoltageLevel) {
	delete(a.regs, vl)
	a.voltageLevels = removeItem(a.voltageLevels, vl)
}

// OnReferencedReplacement is a no-op: voltage levels are never replaced.
func (a *Area) OnReferencedReplacement(*VoltageLevel, *VoltageLevel) {}

// Remove deletes the area and its dependencies on voltage levels.
func (a *Area) Remove(ctx context.Context) error {
	if a.removed {
		return fmt.Errorf("%w: area %q", ErrRemoved, a.id)
	}
	a.scope.Close()
	a.regs = nil
	a.voltageLevels = nil
	a.network.areas = removeItem(a.network.areas, a)
	a.network.unregister(a)
	a.removed = true
	a.network.Logger(ctx).Info("area removed", "id", a.id)
	return nil
}
