// Package builder provides the active power distributions applied to
// generated loads.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// PowerFn produces a load active power (MW) from an optional RNG. It must be
// deterministic for a given RNG state.
type PowerFn func(rng *rand.Rand) float64

// DefaultPowerFn always returns DefaultLoadP.
func DefaultPowerFn(_ *rand.Rand) float64 {
	return DefaultLoadP
}

// ConstantPowerFn returns a PowerFn that always yields p.
// Panics if p is NaN or infinite.
func ConstantPowerFn(p float64) PowerFn {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		panic(fmt.Sprintf("ConstantPowerFn: p must be finite, got %g", p))
	}
	return func(_ *rand.Rand) float64 {
		return p
	}
}

// UniformPowerFn returns a PowerFn sampling uniformly in [min, max).
// Panics if max < min. With a nil RNG it yields DefaultLoadP.
func UniformPowerFn(min, max float64) PowerFn {
	if max < min {
		panic(fmt.Sprintf("UniformPowerFn: require min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLoadP
		}
		if max == min {
			return min
		}
		return min + rng.Float64()*(max-min)
	}
}

// NormalPowerFn returns a PowerFn sampling from N(mean, stddev), clipped at 0
// since generated loads only consume. Panics if stddev < 0. With a nil RNG it
// yields DefaultLoadP.
func NormalPowerFn(mean, stddev float64) PowerFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalPowerFn: stddev must be ≥ 0, got %g", stddev))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLoadP
		}
		return math.Max(0, rng.NormFloat64()*stddev+mean)
	}
}

// WithConstantPower sets loads to a fixed active power.
func WithConstantPower(p float64) BuilderOption {
	return WithPowerFn(ConstantPowerFn(p))
}

// WithUniformPower sets loads to U[min,max).
func WithUniformPower(min, max float64) BuilderOption {
	return WithPowerFn(UniformPowerFn(min, max))
}

// WithNormalPower sets loads to N(mean,stddev), clipped at 0.
func WithNormalPower(mean, stddev float64) BuilderOption {
	return WithPowerFn(NormalPowerFn(mean, stddev))
}
