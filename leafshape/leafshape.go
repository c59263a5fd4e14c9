package leafshape

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/pkg/mesh"
)

// ResolutionParams controls contour sampling density and the deterministic
// seed backing any randomized draw (currently only margin asymmetry).
type ResolutionParams struct {
	ContourResolution int
	Seed              int64
}

// Generator produces a single flat leaf mesh from superformula, margin,
// and surface parameters (spec §4.2).
type Generator struct {
	Superformula SuperformulaParams
	Margin       MarginParams
	Surface      SurfaceParams
	Resolution   ResolutionParams
}

// Generate runs the full pipeline: sample, apply margin, triangulate,
// project UVs, deform. The returned error, if non-nil, is a
// go.uber.org/multierr aggregate of non-fatal parameter clamps — it is
// never returned because of malformed geometry, which the pipeline
// degrades on its own rather than failing for.
func (g *Generator) Generate() (*mesh.Mesh, error) {
	var warnings error
	res := g.Resolution.ContourResolution
	if res < 8 {
		warnings = multierr.Append(warnings, errClamped("contour_resolution", res, 8))
		res = 8
	}
	if math.Abs(g.Superformula.N1) < 0.001 {
		warnings = multierr.Append(warnings, errClamped("superformula.n1", g.Superformula.N1, 0.001))
	}

	points, thetas := sampleContour(g.Superformula, res)
	points = applyMargin(points, thetas, g.Margin)
	if len(points) < 3 {
		return mesh.NewMesh(), warnings
	}

	extra, triangles := Triangulate(points)
	allPoints := append(append([]geom.Vec2{}, points...), extra...)

	msh := mesh.NewMesh()
	for _, p := range allPoints {
		msh.AddVertex(geom.Vec3FromVec2(p, 0))
	}

	minX, maxX, minY, maxY := boundingBox(allPoints)
	width, height := maxX-minX, maxY-minY
	uvIdx := make([]int, len(allPoints))
	for i, p := range allPoints {
		u, v := 0.5, 0.5
		if width > 1e-9 {
			u = (p.X - minX) / width
		}
		if height > 1e-9 {
			v = (p.Y - minY) / height
		}
		uvIdx[i] = msh.AddUV(geom.Vec2{X: u, Y: v})
	}
	for _, tri := range triangles {
		msh.AddTriangle(tri[0], tri[1], tri[2], uvIdx[tri[0]], uvIdx[tri[1]], uvIdx[tri[2]])
	}

	zs := deform(allPoints, points, g.Surface)
	for i, z := range zs {
		msh.Vertices[i].Z = z
	}
	return msh, warnings
}

// Contour returns the closed 2D outline produced by the superformula and
// margin stages alone, without triangulating or deforming it — the input
// shape venation.Generator.GenerateVeins expects.
func (g *Generator) Contour() []geom.Vec2 {
	res := g.Resolution.ContourResolution
	if res < 8 {
		res = 8
	}
	points, thetas := sampleContour(g.Superformula, res)
	return applyMargin(points, thetas, g.Margin)
}

// errClamped reports a single out-of-range parameter clamp.
func errClamped(param string, got, clampedTo interface{}) error {
	return errors.Errorf("%s = %v clamped to %v", param, got, clampedTo)
}

func boundingBox(points []geom.Vec2) (minX, maxX, minY, maxY float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}
