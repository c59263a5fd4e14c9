package mesh

import (
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

func TestPolygonIsTriangle(t *testing.T) {
	tri := NewTrianglePolygon(0, 1, 2)
	if !tri.IsTriangle() {
		t.Errorf("NewTrianglePolygon should be a triangle, got %v", tri)
	}
	quad := Polygon{0, 1, 2, 3}
	if quad.IsTriangle() {
		t.Errorf("quad %v should not be a triangle", quad)
	}
}

func TestMeshAddTriangleRoundTrip(t *testing.T) {
	m := NewMesh()
	a := m.AddVertex(geom.Vec3{})
	b := m.AddVertex(geom.Vec3{X: 1})
	c := m.AddVertex(geom.Vec3{Y: 1})
	uvA := m.AddUV(geom.Vec2{})
	uvB := m.AddUV(geom.Vec2{X: 1})
	uvC := m.AddUV(geom.Vec2{Y: 1})
	m.AddTriangle(a, b, c, uvA, uvB, uvC)

	if len(m.Polygons) != 1 || len(m.UVLoops) != 1 {
		t.Fatalf("expected 1 polygon and 1 uv loop, got %d/%d", len(m.Polygons), len(m.UVLoops))
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestMeshValidateCatchesOutOfRangeIndex(t *testing.T) {
	m := NewMesh()
	m.AddVertex(geom.Vec3{})
	m.AddUV(geom.Vec2{})
	m.Polygons = append(m.Polygons, NewTrianglePolygon(0, 1, 2))
	m.UVLoops = append(m.UVLoops, NewTrianglePolygon(0, 0, 0))
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for out-of-range vertex index")
	}
}

func TestMeshValidateCatchesAttributeLengthMismatch(t *testing.T) {
	m := NewMesh()
	m.AddVertex(geom.Vec3{})
	m.AddVertex(geom.Vec3{X: 1})
	m.SetFloat(AttrRadius, []float64{1})
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for attribute length mismatch")
	}
}

func TestAttributeAccessors(t *testing.T) {
	m := NewMesh()
	m.AddVertex(geom.Vec3{})
	m.SetFloat(AttrRadius, []float64{2.5})
	m.SetInt(AttrStemID, []int{3})
	m.SetVec3(AttrDirection, []geom.Vec3{{Z: 1}})

	if v, ok := m.Float(AttrRadius); !ok || v[0] != 2.5 {
		t.Errorf("Float(radius) = %v, %v", v, ok)
	}
	if v, ok := m.Int(AttrStemID); !ok || v[0] != 3 {
		t.Errorf("Int(stem_id) = %v, %v", v, ok)
	}
	if v, ok := m.Vec3(AttrDirection); !ok || v[0] != (geom.Vec3{Z: 1}) {
		t.Errorf("Vec3(direction) = %v, %v", v, ok)
	}
	if _, ok := m.Float(AttrStemID); ok {
		t.Error("Float(stem_id) should fail: wrong kind")
	}
}
