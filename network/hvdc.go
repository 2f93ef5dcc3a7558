package network

import (
	"context"
	"fmt"
)

// HvdcLine links two converter stations. It joins their buses in connected
// components but not in synchronous ones.
type HvdcLine struct {
	id       string
	network  *Network
	stations [2]*Connectable
	removed  bool
}

// NewHvdcLine links two unused converter stations.
func (n *Network) NewHvdcLine(id string, station1, station2 *Connectable) (*HvdcLine, error) {
	if err := checkID(n.index, id); err != nil {
		return nil, err
	}
	for _, s := range []*Connectable{station1, station2} {
		if s == nil || s.network != n || s.removed {
			return nil, fmt.Errorf("%w: converter station of %q", ErrNotFound, id)
		}
		if s.kind != HvdcConverterStation {
			return nil, fmt.Errorf("%w: %q is %v", ErrWrongConnectableKind, s.id, s.kind)
		}
		if s.hvdc != nil {
			return nil, fmt.Errorf("%w: %q by %q", ErrStationInUse, s.id, s.hvdc.id)
		}
	}
	if station1 == station2 {
		return nil, fmt.Errorf("%w: %q links %q to itself", ErrStationInUse, id, station1.id)
	}
	h := &HvdcLine{id: id, network: n, stations: [2]*Connectable{station1, station2}}
	if err := n.register(h); err != nil {
		return nil, err
	}
	station1.hvdc, station2.hvdc = h, h
	n.hvdcLines = append(n.hvdcLines, h)
	n.invalidateAllComponents()
	return h, nil
}

// ID returns the HVDC line id.
func (h *HvdcLine) ID() string { return h.id }

// ConverterStation returns the station on side.
func (h *HvdcLine) ConverterStation(side Side) (*Connectable, error) {
	if side != One && side != Two {
		return nil, fmt.Errorf("%w: %v of %q", ErrInvalidSide, side, h.id)
	}
	return h.stations[side-1], nil
}

// Remove deletes the line and frees its stations.
func (h *HvdcLine) Remove(ctx context.Context) error {
	if h.removed {
		return fmt.Errorf("%w: %q", ErrRemoved, h.id)
	}
	for _, s := range h.stations {
		s.hvdc = nil
	}
	n := h.network
	n.hvdcLines = removeItem(n.hvdcLines, h)
	n.unregister(h)
	n.invalidateAllComponents()
	h.removed = true
	n.Logger(ctx).Info("hvdc line removed", "id", h.id)
	return nil
}
