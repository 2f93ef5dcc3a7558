// SPDX-License-Identifier: MIT
// Package: netmodel/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with builderErrorf / %w.
//   • Constructors MUST NOT panic; validation panics are confined to
//     option constructors (WithX...).

package builder

import "errors"

// ErrTooFewElements indicates that a size parameter (sections, buses) is
// smaller than the minimum for the requested constructor.
var ErrTooFewElements = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without an
// RNG (WithSeed or WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrUnknownVoltageLevel indicates that a constructor referenced a voltage
// level no earlier constructor created.
var ErrUnknownVoltageLevel = errors.New("builder: unknown voltage level")

// ErrConstructFailed indicates that the network refused a mutation, or that
// the builder was misused (nil constructor or network).
var ErrConstructFailed = errors.New("builder: construction failed")
