// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// Package builder assembles deterministic network fixtures from small,
// composable constructors, in the functional-options style used across the
// module.
//
// The package offers:
//
//   - An orchestrator: BuildNetwork(ctx, nopts, bopts, cons...) creates a
//     network.Network and applies constructors in order; Apply does the same
//     on an existing network.
//   - Topology constructors:
//     – NodeBreakerRing: busbar sections coupled in a ring, one load bay each.
//     – BusBreakerChain: configured buses chained by breakers, one load each.
//     – Line / HvdcLink: links between levels built earlier (BusEnd, NodeEnd, BayEnd).
//   - State constructors:
//     – RandomSwitchStates: seeded open/closed draw for every switch.
//     – Variants: clones of the initial variant.
//   - Options: WithNetworkID, WithIDScheme (DefaultIDFn, ExcelColumnIDFn,
//     PaddedIDFn), WithSeed/WithRand, WithPowerFn (ConstantPowerFn,
//     UniformPowerFn, NormalPowerFn), WithNominalV.
//
// Guarantees:
//
//   - Determinism: equal options, seed and constructor order give equal
//     networks, element ids and per-variant values.
//   - Option constructors panic on meaningless values; constructors return
//     errors wrapping ErrTooFewElements, ErrInvalidProbability,
//     ErrNeedRandSource, ErrUnknownVoltageLevel or ErrConstructFailed.
//   - Network errors stay reachable with errors.Is alongside
//     ErrConstructFailed.
package builder
