package leafshape

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

// SurfaceParams controls the Z-axis curvature deformer (spec §4.2 step 5).
type SurfaceParams struct {
	MidribCurvature float64
	CrossCurvature  float64
	EdgeCurl        float64
}

// deform computes each of verts' Z displacement from the surface curvature
// parameters and its position relative to contour's bounding box and
// nearest edge. verts is every mesh vertex (including any centroid-fan
// fallback point, which is not part of the leaf outline); contour is the pre-
// triangulation outline alone, so edge distance is always measured
// against the true boundary rather than a polygon that could include an
// interior fallback vertex.
func deform(verts, contour []geom.Vec2, surf SurfaceParams) []float64 {
	n := len(verts)
	if n == 0 {
		return nil
	}
	minX, maxX := contour[0].X, contour[0].X
	minY, maxY := contour[0].Y, contour[0].Y
	for _, p := range contour {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	width := maxX - minX
	height := maxY - minY
	cx := (minX + maxX) / 2

	z := make([]float64, n)
	for i, p := range verts {
		nx, ny := 0.0, 0.0
		if width > 1e-9 {
			nx = (p.X - cx) / (width / 2)
		}
		if height > 1e-9 {
			ny = (p.Y - minY) / height
		}

		edgeDist := minDistanceToContour(p, contour)
		denom := 0.3 * width / 2
		edgeFactor := 1.0
		if denom > 1e-9 {
			edgeFactor = 1 - geom.Clamp(edgeDist/denom, 0, 1)
		}

		z[i] = surf.MidribCurvature*ny*ny*0.5 +
			surf.CrossCurvature*nx*nx*0.3 +
			surf.EdgeCurl*edgeFactor*edgeFactor*0.2
	}
	return z
}

// minDistanceToContour returns p's minimum point-to-segment distance to
// any edge of the closed polygon contour.
func minDistanceToContour(p geom.Vec2, contour []geom.Vec2) float64 {
	n := len(contour)
	min := math.MaxFloat64
	for i := 0; i < n; i++ {
		d := pointSegmentDistance(p, contour[i], contour[(i+1)%n])
		if d < min {
			min = d
		}
	}
	return min
}

func pointSegmentDistance(p, a, b geom.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 < 1e-12 {
		return p.Distance(a)
	}
	t := geom.Clamp01(p.Sub(a).Dot(ab) / l2)
	proj := a.Add(ab.Scale(t))
	return p.Distance(proj)
}
