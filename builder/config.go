// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • networkID = ""                   (network.New generates one)
//   • idFn      = DefaultIDFn          ("0","1","2",...)
//   • rng       = nil                  (no randomness unless seeded)
//   • powerFn   = DefaultPowerFn       (constant DefaultLoadP)
//   • nominalV  = DefaultNominalV

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// networkID is handed to network.New by BuildNetwork.
	networkID string
	// Element index -> id suffix.
	idFn IDFn
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Active power drawn by generated loads.
	powerFn PowerFn
	// Nominal voltage of generated voltage levels, in kV.
	nominalV float64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:     DefaultIDFn,
		powerFn:  DefaultPowerFn,
		nominalV: DefaultNominalV,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// elementID renders the id of the i-th element of kind in the voltage level vl,
// e.g. "VL1_BBS0".
func (c builderConfig) elementID(vl, kind string, i int) string {
	return vl + "_" + kind + c.idFn(i)
}
