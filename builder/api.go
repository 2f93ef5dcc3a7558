// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// api.go - public entry-points for the builder package.
//
// Contract:
//   - One orchestrator: BuildNetwork(ctx, nopts, bopts, cons...). Creates the
//     network, resolves cfg, runs cons in order.
//   - Factories are declared here and implemented in impl_*.go.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical networks, including element ids and per-variant state.

package builder

import (
	"context"
	"fmt"

	"github.com/katalvlaran/netmodel/network"
)

// Constructor applies a deterministic mutation to n using the resolved
// builderConfig. Constructors validate their parameters before touching the
// network and return sentinel errors; they never panic.
type Constructor func(ctx context.Context, n *network.Network, cfg builderConfig) error

// BuildNetwork creates a network with options nopts, resolves the builder
// configuration from bopts and applies all constructors in order. The first
// constructor error is wrapped with "BuildNetwork: %w" and returned; the
// partially built network is discarded.
//
// Complexity: O(len(bopts)) to resolve options plus the cost of each constructor.
func BuildNetwork(ctx context.Context, nopts []network.Option, bopts []BuilderOption, cons ...Constructor) (*network.Network, error) {
	cfg := newBuilderConfig(bopts...)
	n := network.New(cfg.networkID, nopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(ctx, n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return n, nil
}

// Apply runs constructors against an existing network, resolving opts once.
// It is the building block for fixtures that extend a network loaded elsewhere.
func Apply(ctx context.Context, n *network.Network, opts []BuilderOption, cons ...Constructor) error {
	if n == nil {
		return fmt.Errorf("Apply: nil network: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Apply: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(ctx, n, cfg); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}
	return nil
}

// =============================================================================
// Factories (declarations) - implemented in impl_*.go
// =============================================================================
//
// Element ids are derived from the voltage level id and cfg.idFn so that two
// constructors never collide when given distinct ids.

// NodeBreakerRing builds a node-breaker voltage level whose k busbar sections
// (k ≥ 2) are coupled in a ring by closed breakers, each section feeding one
// load through a disconnector and a breaker.
//func NodeBreakerRing(id string, sections int) Constructor

// BusBreakerChain builds a bus-breaker voltage level with n configured buses
// (n ≥ 1) chained by closed breakers and a connected load on every bus.
//func BusBreakerChain(id string, buses int) Constructor

// Line connects two voltage levels built by earlier constructors.
//func Line(id string, end1, end2 End) Constructor

// HvdcLink adds a converter station on each of two voltage levels and an HVDC
// line between them.
//func HvdcLink(id string, end1, end2 End) Constructor

// RandomSwitchStates opens every switch of the network with probability p in
// the working variant. Requires cfg.rng.
//func RandomSwitchStates(p float64) Constructor

// Variants clones the initial variant into each of ids.
//func Variants(ids ...string) Constructor
