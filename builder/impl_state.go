// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// impl_state.go - constructors that touch variant state rather than structure.

package builder

import (
	"context"

	"github.com/katalvlaran/netmodel/network"
	"github.com/katalvlaran/netmodel/variant"
)

// RandomSwitchStates opens each switch of the network with probability p and
// closes it otherwise, in the working variant of ctx. Switches are visited in
// voltage level then creation order, so a fixed seed gives a fixed outcome.
//
// Requires cfg.rng (ErrNeedRandSource) and p in [0,1] (ErrInvalidProbability).
func RandomSwitchStates(p float64) Constructor {
	return func(ctx context.Context, n *network.Network, cfg builderConfig) error {
		if err := validateProbability(MethodRandomSwitchStates, p); err != nil {
			return err
		}
		if cfg.rng == nil {
			return builderErrorf(MethodRandomSwitchStates, ErrNeedRandSource, "no rng configured")
		}
		for _, vl := range n.VoltageLevels() {
			for _, sw := range vl.Switches() {
				if err := sw.SetOpen(ctx, cfg.rng.Float64() < p); err != nil {
					return wrapNetwork(MethodRandomSwitchStates, "SetOpen("+sw.ID()+")", err)
				}
			}
		}
		return nil
	}
}

// Variants clones the initial variant into each of ids.
func Variants(ids ...string) Constructor {
	return func(_ context.Context, n *network.Network, _ builderConfig) error {
		if err := validateMin(MethodVariants, len(ids), 1); err != nil {
			return err
		}
		if err := n.Variants().CloneVariant(variant.InitialVariantID, ids...); err != nil {
			return wrapNetwork(MethodVariants, "CloneVariant", err)
		}
		return nil
	}
}
