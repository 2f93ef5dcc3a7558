package network

import (
	"context"
	"fmt"
)

// Substation groups voltage levels.
type Substation struct {
	id            string
	network       *Network
	voltageLevels []*VoltageLevel
	removed       bool
}

// NewSubstation creates a substation.
func (n *Network) NewSubstation(id string) (*Substation, error) {
	if err := checkID(n.index, id); err != nil {
		return nil, err
	}
	s := &Substation{id: id, network: n}
	if err := n.register(s); err != nil {
		return nil, err
	}
	n.substations = append(n.substations, s)
	return s, nil
}

// ID returns the substation id.
func (s *Substation) ID() string { return s.id }

// Network returns the owning network.
func (s *Substation) Network() *Network { return s.network }

// VoltageLevels returns the voltage levels of s in creation order.
func (s *Substation) VoltageLevels() []*VoltageLevel {
	return append([]*VoltageLevel(nil), s.voltageLevels...)
}

// Remove deletes an empty substation.
func (s *Substation) Remove(ctx context.Context) error {
	if s.removed {
		return fmt.Errorf("%w: substation %q", ErrRemoved, s.id)
	}
	if len(s.voltageLevels) > 0 {
		return fmt.Errorf("%w: %q", ErrSubstationNotEmpty, s.id)
	}
	n := s.network
	n.substations = removeItem(n.substations, s)
	n.unregister(s)
	s.removed = true
	n.Logger(ctx).Info("substation removed", "id", s.id)
	return nil
}
