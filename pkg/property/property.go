// Package property implements the Property interpolation descriptor used
// throughout the tree growth engine (spec §4.5): a mapping from a scalar
// argument in [0, 1] to a float, in one of three flavors — constant,
// random-in-range, and piecewise curve.
package property

import "github.com/Faultbox/midgard-ro/pkg/geom"

// CurveKind selects the interpolation rule used between two keyframes of a
// Curve property.
type CurveKind int

const (
	// Linear interpolates keyframes with a straight lerp.
	Linear CurveKind = iota
	// Smoothstep interpolates keyframes with a 3t²-2t³ ease curve.
	Smoothstep
)

// Keyframe is one control point of a piecewise Curve property.
type Keyframe struct {
	At    float64 // position along the property's argument domain, [0,1]
	Value float64
}

// Property is a tunable scalar-to-scalar mapping. Exactly one constructor
// should be used to build a given instance.
type Property struct {
	kind     propKind
	constant float64
	lo, hi   float64
	curve    []Keyframe
	curveFn  CurveKind
}

type propKind int

const (
	kindConstant propKind = iota
	kindRandom
	kindCurve
)

// Constant returns a Property that always evaluates to v.
func Constant(v float64) Property {
	return Property{kind: kindConstant, constant: v}
}

// Random returns a Property that draws a value uniformly from [lo, hi)
// using the RNG passed to Eval, independent of the argument t.
func Random(lo, hi float64) Property {
	return Property{kind: kindRandom, lo: lo, hi: hi}
}

// Curve returns a Property that interpolates between sorted keyframes. If
// keyframes are not already sorted by At, Curve sorts a copy.
func Curve(kind CurveKind, keys ...Keyframe) Property {
	sorted := append([]Keyframe(nil), keys...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].At > sorted[j].At; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return Property{kind: kindCurve, curve: sorted, curveFn: kind}
}

// Eval evaluates the property at argument t ∈ [0,1]. rng is consulted only
// for Random properties; pass nil for Constant/Curve properties.
func (p Property) Eval(t float64, rng *geom.RNG) float64 {
	switch p.kind {
	case kindConstant:
		return p.constant
	case kindRandom:
		if rng == nil {
			return p.lo
		}
		return rng.Range(p.lo, p.hi)
	case kindCurve:
		return p.evalCurve(t)
	default:
		return 0
	}
}

func (p Property) evalCurve(t float64) float64 {
	if len(p.curve) == 0 {
		return 0
	}
	if len(p.curve) == 1 || t <= p.curve[0].At {
		return p.curve[0].Value
	}
	last := p.curve[len(p.curve)-1]
	if t >= last.At {
		return last.Value
	}

	prev, next := p.curve[0], p.curve[0]
	for i := 1; i < len(p.curve); i++ {
		if p.curve[i].At >= t {
			prev = p.curve[i-1]
			next = p.curve[i]
			break
		}
	}

	span := next.At - prev.At
	frac := 0.0
	if span > 1e-12 {
		frac = (t - prev.At) / span
	}
	if p.curveFn == Smoothstep {
		frac = frac * frac * (3 - 2*frac)
	}
	return geom.LerpF(prev.Value, next.Value, frac)
}
