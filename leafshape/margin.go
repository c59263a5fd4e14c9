package leafshape

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

// MarginType selects the tooth-modulation rule applied to a leaf contour.
type MarginType int

const (
	Entire MarginType = iota
	Serrate
	Dentate
	Crenate
	Lobed
)

// MarginParams controls the margin-tooth modulation (spec §4.2 step 2).
type MarginParams struct {
	Type           MarginType
	ToothCount     int
	ToothDepth     float64
	ToothSharpness float64
	AsymmetrySeed  int64 // 0 means no asymmetry
}

// applyMargin modulates each contour point's radius by a per-tooth
// waveform keyed on its angular fraction through one tooth period.
func applyMargin(points []geom.Vec2, thetas []float64, p MarginParams) []geom.Vec2 {
	if p.Type == Entire || p.ToothCount <= 0 {
		return points
	}
	asymmetry := 0.0
	if p.AsymmetrySeed != 0 {
		asymmetry = geom.SeededUniform(p.AsymmetrySeed, -0.3, 0.3)
	}
	depth := p.ToothDepth * (1 + asymmetry)

	out := make([]geom.Vec2, len(points))
	for i, pt := range points {
		frac := math.Mod(thetas[i]*float64(p.ToothCount)/(2*math.Pi), 1)
		if frac < 0 {
			frac += 1
		}

		var mod float64
		switch p.Type {
		case Serrate:
			mod = sawtooth(frac, p.ToothSharpness)
		case Dentate:
			mod = 1 - 2*math.Abs(frac-0.5)
		case Crenate:
			mod = 0.5 * (1 + math.Sin(2*math.Pi*frac))
		case Lobed:
			mod = 0.5 * (1 + math.Cos(2*math.Pi*frac))
		}

		r := pt.Length()
		if r < 1e-12 {
			out[i] = pt
			continue
		}
		out[i] = pt.Scale((r * (1 + depth*mod)) / r)
	}
	return out
}

// sawtooth returns a triangle wave over [0,1) that peaks at sharpness.
func sawtooth(frac, sharpness float64) float64 {
	s := geom.Clamp(sharpness, 0.01, 0.99)
	if frac <= s {
		return frac / s
	}
	return (1 - frac) / (1 - s)
}
