package leafshape

import (
	"math"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

func baseSuperformula() SuperformulaParams {
	return SuperformulaParams{M: 5, A: 1, B: 1, N1: 1, N2: 1, N3: 1, AspectRatio: 0.8}
}

func TestGenerateSuperformulaDegenerateN1(t *testing.T) {
	sf := baseSuperformula()
	sf.N1 = 0
	g := &Generator{Superformula: sf, Resolution: ResolutionParams{ContourResolution: 16}}
	m, _ := g.Generate()
	if len(m.Vertices) < 4 {
		t.Errorf("degenerate n1 produced %d vertices, want >= 4", len(m.Vertices))
	}
}

func TestGenerateMeshValidates(t *testing.T) {
	g := &Generator{
		Superformula: baseSuperformula(),
		Margin:       MarginParams{Type: Dentate, ToothCount: 6, ToothDepth: 0.15, ToothSharpness: 0.5},
		Resolution:   ResolutionParams{ContourResolution: 24},
	}
	m, _ := g.Generate()
	if err := m.Validate(); err != nil {
		t.Fatalf("generated leaf mesh is invalid: %v", err)
	}
}

func TestGenerateUVsInUnitSquare(t *testing.T) {
	g := &Generator{Superformula: baseSuperformula(), Resolution: ResolutionParams{ContourResolution: 20}}
	m, _ := g.Generate()
	for i, uv := range m.UVs {
		if uv.X < -1e-9 || uv.X > 1+1e-9 || uv.Y < -1e-9 || uv.Y > 1+1e-9 {
			t.Errorf("uv[%d] = %v out of [0,1]^2", i, uv)
		}
	}
}

func TestDeformFlatWhenEverythingZero(t *testing.T) {
	g := &Generator{
		Superformula: baseSuperformula(),
		Surface:      SurfaceParams{MidribCurvature: 0, CrossCurvature: 0, EdgeCurl: 0},
		Resolution:   ResolutionParams{ContourResolution: 16},
	}
	m, _ := g.Generate()
	for i, v := range m.Vertices {
		if math.Abs(v.Z) > 1e-6 {
			t.Errorf("vertex[%d].Z = %v, want 0 with all surface params zero", i, v.Z)
		}
	}
}

func TestDeformNonZeroProducesDisplacement(t *testing.T) {
	g := &Generator{
		Superformula: baseSuperformula(),
		Surface:      SurfaceParams{MidribCurvature: 0.6, CrossCurvature: 0.3, EdgeCurl: 0.2},
		Resolution:   ResolutionParams{ContourResolution: 16},
	}
	m, _ := g.Generate()
	any := false
	for _, v := range m.Vertices {
		if math.Abs(v.Z) > 1e-6 {
			any = true
			break
		}
	}
	if !any {
		t.Error("expected at least one vertex with nonzero Z when surface params are nonzero")
	}
}

func TestGenerateWarnsOnClampedParameters(t *testing.T) {
	sf := baseSuperformula()
	sf.N1 = 0
	g := &Generator{Superformula: sf, Resolution: ResolutionParams{ContourResolution: 2}}
	_, err := g.Generate()
	if err == nil {
		t.Fatal("expected a non-nil aggregated warning for n1 and contour_resolution clamps")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("multierr.Errors(err) has %d entries, want 2", got)
	}
}

func TestGenerateNoWarningsForInRangeParameters(t *testing.T) {
	g := &Generator{Superformula: baseSuperformula(), Resolution: ResolutionParams{ContourResolution: 16}}
	_, err := g.Generate()
	if err != nil {
		t.Errorf("unexpected warnings for in-range parameters: %v", err)
	}
}

func TestContourMatchesGeneratedMeshBoundary(t *testing.T) {
	g := &Generator{Superformula: baseSuperformula(), Resolution: ResolutionParams{ContourResolution: 16}}
	contour := g.Contour()
	m, _ := g.Generate()
	if len(contour) == 0 {
		t.Fatal("Contour() returned no points")
	}
	if len(contour) > len(m.Vertices) {
		t.Errorf("Contour() has %d points, more than the %d vertices in the generated mesh", len(contour), len(m.Vertices))
	}
	for i, p := range contour {
		v := m.Vertices[i]
		if math.Abs(v.X-p.X) > 1e-9 || math.Abs(v.Y-p.Y) > 1e-9 {
			t.Errorf("contour[%d] = %v does not match mesh vertex XY %v", i, p, v)
		}
	}
}

func TestTriangulateSquare(t *testing.T) {
	pts := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	_, tris := Triangulate(pts)
	if len(tris) != 2 {
		t.Fatalf("Triangulate(square) = %d triangles, want 2", len(tris))
	}
}
