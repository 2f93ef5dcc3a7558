// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// impl_chain.go - bus-breaker chain of configured buses.

package builder

import (
	"context"

	"github.com/katalvlaran/netmodel/network"
)

// BusBreakerChain builds a bus-breaker voltage level id with buses configured
// buses <id>_B<i> (≥ MinChainBuses). Consecutive buses are joined by a closed
// breaker <id>_SW<i> and every bus carries a connected load <id>_L<i>.
//
// Complexity: O(n) elements.
func BusBreakerChain(id string, buses int) Constructor {
	return func(ctx context.Context, n *network.Network, cfg builderConfig) error {
		if err := validateID(MethodBusBreakerChain, id); err != nil {
			return err
		}
		if err := validateMin(MethodBusBreakerChain, buses, MinChainBuses); err != nil {
			return err
		}
		vl, err := newVoltageLevel(MethodBusBreakerChain, n, cfg, id, network.BusBreaker)
		if err != nil {
			return err
		}

		for i := 0; i < buses; i++ {
			bus := cfg.elementID(id, KindBus, i)
			if _, err = vl.NewConfiguredBus(bus); err != nil {
				return wrapNetwork(MethodBusBreakerChain, "NewConfiguredBus("+bus+")", err)
			}
			if i > 0 {
				sw := cfg.elementID(id, KindBusSwitch, i-1)
				if _, err = vl.NewSwitch(network.SwitchSpec{
					ID:   sw,
					Kind: network.Breaker,
					Bus1: cfg.elementID(id, KindBus, i-1),
					Bus2: bus,
				}); err != nil {
					return wrapNetwork(MethodBusBreakerChain, "NewSwitch("+sw+")", err)
				}
			}
			if err = addLoad(ctx, MethodBusBreakerChain, vl, cfg, cfg.elementID(id, KindLoad, i), network.AtBus(bus)); err != nil {
				return err
			}
		}
		return nil
	}
}
