// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// impl_ring.go - node-breaker ring of busbar sections.
//
// Layout for k sections (i in [0,k)):
//   node i          busbar section <id>_BBS<i>
//   node k+2i       feeder node, <id>_D<i> from node i (disconnector)
//   node k+2i+1     load <id>_L<i>, <id>_BR<i> from node k+2i (breaker)
//   coupler <id>_C<i> joins node i to node (i+1)%k; a 2-section ring has one.
//
// With every switch closed the whole level is a single bus.

package builder

import (
	"context"

	"github.com/katalvlaran/netmodel/network"
)

// NodeBreakerRing builds a node-breaker voltage level id whose sections
// busbar sections (≥ MinRingSections) are coupled in a ring by closed
// breakers, each feeding one load through a disconnector and a breaker.
//
// Complexity: O(k) elements.
func NodeBreakerRing(id string, sections int) Constructor {
	return func(ctx context.Context, n *network.Network, cfg builderConfig) error {
		if err := validateID(MethodNodeBreakerRing, id); err != nil {
			return err
		}
		if err := validateMin(MethodNodeBreakerRing, sections, MinRingSections); err != nil {
			return err
		}
		vl, err := newVoltageLevel(MethodNodeBreakerRing, n, cfg, id, network.NodeBreaker)
		if err != nil {
			return err
		}

		couplers := sections
		if sections == MinRingSections {
			couplers = 1
		}
		for i := 0; i < couplers; i++ {
			if err = addNodeSwitch(vl, cfg.elementID(id, KindCoupler, i), network.Breaker, i, (i+1)%sections); err != nil {
				return err
			}
		}

		for i := 0; i < sections; i++ {
			feeder := sections + 2*i
			if _, err = vl.NewInjection(ctx, network.InjectionSpec{
				ID:       cfg.elementID(id, KindBusbarSection, i),
				Kind:     network.BusbarSection,
				Location: network.AtNode(i),
			}); err != nil {
				return wrapNetwork(MethodNodeBreakerRing, "busbar section", err)
			}
			if err = addNodeSwitch(vl, cfg.elementID(id, KindDisconnector, i), network.Disconnector, i, feeder); err != nil {
				return err
			}
			if err = addNodeSwitch(vl, cfg.elementID(id, KindBreaker, i), network.Breaker, feeder, feeder+1); err != nil {
				return err
			}
			if err = addLoad(ctx, MethodNodeBreakerRing, vl, cfg, cfg.elementID(id, KindLoad, i), network.AtNode(feeder+1)); err != nil {
				return err
			}
		}
		return nil
	}
}

func addNodeSwitch(vl *network.VoltageLevel, id string, kind network.SwitchKind, n1, n2 int) error {
	if _, err := vl.NewSwitch(network.SwitchSpec{ID: id, Kind: kind, Node1: n1, Node2: n2}); err != nil {
		return wrapNetwork(MethodNodeBreakerRing, "NewSwitch("+id+")", err)
	}
	return nil
}
