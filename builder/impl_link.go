// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// impl_link.go - lines and HVDC links between voltage levels.

package builder

import (
	"context"
	"slices"

	"github.com/katalvlaran/netmodel/network"
)

// End locates one end of a link.
type End struct {
	VoltageLevel string
	Location     network.Location
	// Bay asks for a fresh node behind a closed breaker from Location's node,
	// so a node-breaker end does not need a free node of its own.
	Bay bool
}

// BusEnd places an end on configured bus bus of a bus-breaker level.
func BusEnd(vl, bus string) End {
	return End{VoltageLevel: vl, Location: network.AtBus(bus)}
}

// NodeEnd places an end directly on node of a node-breaker level.
func NodeEnd(vl string, node int) End {
	return End{VoltageLevel: vl, Location: network.AtNode(node)}
}

// BayEnd places an end in a new bay fed from node of a node-breaker level.
func BayEnd(vl string, node int) End {
	return End{VoltageLevel: vl, Location: network.AtNode(node), Bay: true}
}

// resolve returns the voltage level and location of e, creating the bay
// breaker <owner>_BR<side> when requested.
func (e End) resolve(method string, n *network.Network, cfg builderConfig, owner string, side int) (*network.VoltageLevel, network.Location, error) {
	vl, err := lookupVoltageLevel(method, n, e.VoltageLevel)
	if err != nil {
		return nil, network.Location{}, err
	}
	if !e.Bay {
		return vl, e.Location, nil
	}
	if vl.TopologyKind() != network.NodeBreaker || !e.Location.IsNode() {
		return nil, network.Location{}, builderErrorf(method, ErrConstructFailed, "bay end on %s level %q", vl.TopologyKind(), vl.ID())
	}
	node := 0
	if nodes := vl.Nodes(); len(nodes) > 0 {
		node = slices.Max(nodes) + 1
	}
	sw := cfg.elementID(owner, KindBreaker, side)
	if _, err = vl.NewSwitch(network.SwitchSpec{ID: sw, Kind: network.Breaker, Node1: e.Location.Node(), Node2: node}); err != nil {
		return nil, network.Location{}, wrapNetwork(method, "NewSwitch("+sw+")", err)
	}
	return vl, network.AtNode(node), nil
}

// Line connects two voltage levels built by earlier constructors with a
// connected line id.
func Line(id string, end1, end2 End) Constructor {
	return func(ctx context.Context, n *network.Network, cfg builderConfig) error {
		if err := validateID(MethodLine, id); err != nil {
			return err
		}
		vl1, loc1, err := end1.resolve(MethodLine, n, cfg, id, 1)
		if err != nil {
			return err
		}
		vl2, loc2, err := end2.resolve(MethodLine, n, cfg, id, 2)
		if err != nil {
			return err
		}
		if _, err = n.NewBranch(ctx, network.BranchSpec{
			ID:   id,
			Kind: network.Line,
			End1: network.TerminalSpec{VoltageLevel: vl1, Location: loc1, Connected: true},
			End2: network.TerminalSpec{VoltageLevel: vl2, Location: loc2, Connected: true},
		}); err != nil {
			return wrapNetwork(MethodLine, "NewBranch("+id+")", err)
		}
		return nil
	}
}

// HvdcLink adds converter stations <id>_CS1 and <id>_CS2 at the two ends and
// an HVDC line id between them. HVDC links join connected components but not
// synchronous ones.
func HvdcLink(id string, end1, end2 End) Constructor {
	return func(ctx context.Context, n *network.Network, cfg builderConfig) error {
		if err := validateID(MethodHvdcLink, id); err != nil {
			return err
		}
		var stations [2]*network.Connectable
		for i, end := range []End{end1, end2} {
			vl, loc, err := end.resolve(MethodHvdcLink, n, cfg, id, i+1)
			if err != nil {
				return err
			}
			sid := cfg.elementID(id, KindStation, i+1)
			stations[i], err = vl.NewInjection(ctx, network.InjectionSpec{
				ID:        sid,
				Kind:      network.HvdcConverterStation,
				Location:  loc,
				Connected: true,
			})
			if err != nil {
				return wrapNetwork(MethodHvdcLink, "NewInjection("+sid+")", err)
			}
		}
		if _, err := n.NewHvdcLine(id, stations[0], stations[1]); err != nil {
			return wrapNetwork(MethodHvdcLink, "NewHvdcLine("+id+")", err)
		}
		return nil
	}
}
