// Package leafshape implements the leaf outline pipeline (spec §4.2):
// superformula contour sampling with adaptive refinement, margin-tooth
// modulation, ear-clip triangulation, planar UV projection, and a
// surface-curvature Z deformer.
package leafshape

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

// SuperformulaParams are Gielis superformula parameters plus the
// horizontal squash factor applied to the resulting contour.
type SuperformulaParams struct {
	M, A, B, N1, N2, N3 float64
	AspectRatio         float64
}

// superformulaRadius evaluates the superformula at angle theta, clamping
// |n1| away from zero (spec §4.2 step 1, §7 OutOfRangeParameter) and
// returning 1 when the denominator sum underflows.
func superformulaRadius(theta float64, sf SuperformulaParams) float64 {
	n1 := sf.N1
	if math.Abs(n1) < 0.001 {
		if n1 < 0 {
			n1 = -0.001
		} else {
			n1 = 0.001
		}
	}
	a, b := sf.A, sf.B
	if a == 0 {
		a = 1e-10
	}
	if b == 0 {
		b = 1e-10
	}
	t1 := math.Pow(math.Abs(math.Cos(sf.M*theta/4)/a), sf.N2)
	t2 := math.Pow(math.Abs(math.Sin(sf.M*theta/4)/b), sf.N3)
	sum := t1 + t2
	if sum < 1e-10 {
		return 1
	}
	return math.Pow(sum, -1/n1)
}

// superformulaPoint returns the 2D contour point at angle theta.
func superformulaPoint(theta float64, sf SuperformulaParams) geom.Vec2 {
	r := superformulaRadius(theta, sf)
	return geom.Vec2{X: r * math.Cos(theta) * sf.AspectRatio, Y: r * math.Sin(theta)}
}

// sampleContour samples res ≥ 8 evenly spaced angles around the
// superformula, then adaptively inserts a midpoint between any pair of
// consecutive samples whose tangents diverge (dot < 0.95), per spec §4.2
// step 1. It returns the refined points and their source angles in
// parallel, since margin modulation needs each point's originating theta.
func sampleContour(sf SuperformulaParams, res int) (points []geom.Vec2, thetas []float64) {
	if res < 8 {
		res = 8
	}
	baseTheta := make([]float64, res)
	basePts := make([]geom.Vec2, res)
	for i := 0; i < res; i++ {
		theta := 2 * math.Pi * float64(i) / float64(res)
		baseTheta[i] = theta
		basePts[i] = superformulaPoint(theta, sf)
	}

	tangent := func(i int) geom.Vec2 {
		prev := basePts[(i-1+res)%res]
		next := basePts[(i+1)%res]
		return next.Sub(prev).Normalize()
	}

	for i := 0; i < res; i++ {
		j := (i + 1) % res
		points = append(points, basePts[i])
		thetas = append(thetas, baseTheta[i])

		if tangent(i).Dot(tangent(j)) < 0.95 {
			midTheta := midAngle(baseTheta[i], baseTheta[j], j == 0)
			points = append(points, superformulaPoint(midTheta, sf))
			thetas = append(thetas, midTheta)
		}
	}
	return points, thetas
}

// midAngle returns the angular midpoint between two consecutive sample
// angles, accounting for the wraparound at the last sample.
func midAngle(a, b float64, wraps bool) float64 {
	if wraps {
		b += 2 * math.Pi
	}
	mid := (a + b) / 2
	if mid >= 2*math.Pi {
		mid -= 2 * math.Pi
	}
	return mid
}
