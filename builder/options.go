// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math/rand"
)

// BuilderOption customizes constructors by mutating a builderConfig before
// the network is built.
type BuilderOption func(*builderConfig)

// WithNetworkID fixes the id of the network created by BuildNetwork.
// An empty id keeps the generated default.
func WithNetworkID(id string) BuilderOption {
	return func(c *builderConfig) {
		c.networkID = id
	}
}

// WithIDScheme sets the element id suffix generator: idx -> string.
// Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPowerFn overrides the active power generator used for loads.
// Panics on nil.
func WithPowerFn(fn PowerFn) BuilderOption {
	if fn == nil {
		panic("builder: WithPowerFn(nil)")
	}
	return func(c *builderConfig) {
		c.powerFn = fn
	}
}

// WithNominalV sets the nominal voltage (kV) of generated voltage levels.
// Panics if kv <= 0.
func WithNominalV(kv float64) BuilderOption {
	if kv <= 0 {
		panic(fmt.Sprintf("builder: WithNominalV(%g)", kv))
	}
	return func(c *builderConfig) {
		c.nominalV = kv
	}
}
