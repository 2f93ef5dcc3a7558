package network

import (
	"fmt"
	"math"
	"sort"
)

// ReactiveLimitsKind tells the ReactiveLimits variants apart.
type ReactiveLimitsKind int

const (
	MinMaxLimits ReactiveLimitsKind = iota
	CurveLimits
)

func (k ReactiveLimitsKind) String() string {
	switch k {
	case MinMaxLimits:
		return "MIN_MAX"
	case CurveLimits:
		return "CURVE"
	default:
		return fmt.Sprintf("ReactiveLimitsKind(%d)", int(k))
	}
}

// ReactiveLimits bounds the reactive power of an equipment as a function of
// its active power. The set of implementations is closed: use AsMinMax or
// AsCurve for the typed view.
type ReactiveLimits interface {
	Kind() ReactiveLimitsKind
	MinQ(p float64) float64
	MaxQ(p float64) float64
	sealed()
}

// MinMaxReactiveLimits are bounds independent of active power.
type MinMaxReactiveLimits struct {
	Min float64
	Max float64
}

// Kind returns MinMaxLimits.
func (MinMaxReactiveLimits) Kind() ReactiveLimitsKind { return MinMaxLimits }

// MinQ returns Min whatever p.
func (l MinMaxReactiveLimits) MinQ(float64) float64 { return l.Min }

// MaxQ returns Max whatever p.
func (l MinMaxReactiveLimits) MaxQ(float64) float64 { return l.Max }

func (MinMaxReactiveLimits) sealed() {}

func unboundedLimits() ReactiveLimits {
	return MinMaxReactiveLimits{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

// CurvePoint is one point of a reactive capability curve.
type CurvePoint struct {
	P    float64
	MinQ float64
	MaxQ float64
}

// ReactiveCapabilityCurve interpolates linearly between points sorted by P
// and holds the end values outside them.
type ReactiveCapabilityCurve struct {
	points []CurvePoint
}

// NewReactiveCapabilityCurve builds a curve from at least two points with
// distinct P and MinQ <= MaxQ.
func NewReactiveCapabilityCurve(points ...CurvePoint) (*ReactiveCapabilityCurve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("network: reactive capability curve needs 2 points, got %d", len(points))
	}
	sorted := append([]CurvePoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].P < sorted[j].P })
	for i, pt := range sorted {
		if pt.MinQ > pt.MaxQ {
			return nil, fmt.Errorf("network: curve point at p=%v: minQ %v > maxQ %v", pt.P, pt.MinQ, pt.MaxQ)
		}
		if i > 0 && sorted[i-1].P == pt.P {
			return nil, fmt.Errorf("network: duplicate curve point at p=%v", pt.P)
		}
	}
	return &ReactiveCapabilityCurve{points: sorted}, nil
}

// Kind returns CurveLimits.
func (*ReactiveCapabilityCurve) Kind() ReactiveLimitsKind { return CurveLimits }

// Points returns the points sorted by P.
func (c *ReactiveCapabilityCurve) Points() []CurvePoint {
	return append([]CurvePoint(nil), c.points...)
}

// MinP and MaxP return the active power range of the curve.
func (c *ReactiveCapabilityCurve) MinP() float64 { return c.points[0].P }

func (c *ReactiveCapabilityCurve) MaxP() float64 { return c.points[len(c.points)-1].P }

// MinQ interpolates the lower bound at p, clamped to the end points.
// Complexity: O(log n)
func (c *ReactiveCapabilityCurve) MinQ(p float64) float64 {
	return c.at(p, func(pt CurvePoint) float64 { return pt.MinQ })
}

// MaxQ interpolates the upper bound at p, clamped to the end points.
// Complexity: O(log n)
func (c *ReactiveCapabilityCurve) MaxQ(p float64) float64 {
	return c.at(p, func(pt CurvePoint) float64 { return pt.MaxQ })
}

func (c *ReactiveCapabilityCurve) at(p float64, q func(CurvePoint) float64) float64 {
	pts := c.points
	if p <= pts[0].P {
		return q(pts[0])
	}
	if p >= pts[len(pts)-1].P {
		return q(pts[len(pts)-1])
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].P >= p })
	lo, hi := pts[i-1], pts[i]
	return q(lo) + (q(hi)-q(lo))*(p-lo.P)/(hi.P-lo.P)
}

func (*ReactiveCapabilityCurve) sealed() {}

// AsMinMax returns l as min/max limits.
func AsMinMax(l ReactiveLimits) (MinMaxReactiveLimits, error) {
	mm, ok := l.(MinMaxReactiveLimits)
	if !ok {
		return MinMaxReactiveLimits{}, fmt.Errorf("%w: %v is not %v", ErrWrongLimitsKind, kindOf(l), MinMaxLimits)
	}
	return mm, nil
}

// AsCurve returns l as a reactive capability curve.
func AsCurve(l ReactiveLimits) (*ReactiveCapabilityCurve, error) {
	c, ok := l.(*ReactiveCapabilityCurve)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not %v", ErrWrongLimitsKind, kindOf(l), CurveLimits)
	}
	return c, nil
}

func kindOf(l ReactiveLimits) string {
	if l == nil {
		return "nil"
	}
	return l.Kind().String()
}
