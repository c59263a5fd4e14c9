package leaflod

import (
	"math"
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/pkg/mesh"
)

func TestGenerateCardEmptyForTooFewVertices(t *testing.T) {
	source := mesh.NewMesh()
	source.AddVertex(geom.Vec3{X: 0, Y: 0, Z: 0})
	source.AddVertex(geom.Vec3{X: 1, Y: 0, Z: 0})

	card := Generator{}.GenerateCard(source)
	if len(card.Vertices) != 0 || len(card.Polygons) != 0 {
		t.Errorf("GenerateCard with 2 source vertices = %d verts/%d polys, want 0/0", len(card.Vertices), len(card.Polygons))
	}
}

func TestGenerateCardMatchesSourceAABB(t *testing.T) {
	source := mesh.NewMesh()
	source.AddVertex(geom.Vec3{X: -2, Y: -1, Z: 0.5})
	source.AddVertex(geom.Vec3{X: 3, Y: 4, Z: -0.5})
	source.AddVertex(geom.Vec3{X: 0, Y: 0, Z: 1})

	card := Generator{}.GenerateCard(source)
	if len(card.Vertices) != 4 {
		t.Fatalf("GenerateCard vertex count = %d, want 4", len(card.Vertices))
	}
	if len(card.Polygons) != 2 {
		t.Fatalf("GenerateCard polygon count = %d, want 2", len(card.Polygons))
	}
	if err := card.Validate(); err != nil {
		t.Errorf("card failed validation: %v", err)
	}

	minX, maxX := card.Vertices[0].X, card.Vertices[0].X
	minY, maxY := card.Vertices[0].Y, card.Vertices[0].Y
	for _, v := range card.Vertices[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	const tol = 0.01
	if math.Abs(minX-(-2)) > tol || math.Abs(maxX-3) > tol || math.Abs(minY-(-1)) > tol || math.Abs(maxY-4) > tol {
		t.Errorf("card AABB = [%v,%v]x[%v,%v], want [-2,3]x[-1,4] within %v", minX, maxX, minY, maxY, tol)
	}
}

func TestGenerateBillboardCloudCounts(t *testing.T) {
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	cloud := Generator{}.GenerateBillboardCloud(positions, 5)
	if len(cloud.Vertices) != 20 {
		t.Errorf("billboard cloud vertex count = %d, want 20", len(cloud.Vertices))
	}
	if len(cloud.Polygons) != 10 {
		t.Errorf("billboard cloud polygon count = %d, want 10", len(cloud.Polygons))
	}
	if err := cloud.Validate(); err != nil {
		t.Errorf("cloud failed validation: %v", err)
	}
}

func TestGenerateBillboardCloudEmpty(t *testing.T) {
	if cloud := (Generator{}).GenerateBillboardCloud(nil, 5); len(cloud.Vertices) != 0 {
		t.Error("expected empty mesh for no positions")
	}
	positions := []geom.Vec3{{X: 0, Y: 0, Z: 0}}
	if cloud := (Generator{}).GenerateBillboardCloud(positions, 0); len(cloud.Vertices) != 0 {
		t.Error("expected empty mesh for num_planes < 1")
	}
}

func TestGetImpostorViewDirectionsHemisphere(t *testing.T) {
	dirs := GetImpostorViewDirections(8)
	if len(dirs) != 64 {
		t.Fatalf("len(dirs) = %d, want 64", len(dirs))
	}
	for i, d := range dirs {
		if d.Z < 0 {
			t.Errorf("dirs[%d].Z = %v, want >= 0", i, d.Z)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Errorf("dirs[%d] is not unit length: %v", i, d.Length())
		}
	}
}

func TestGetImpostorViewDirectionsEmptyForNonPositiveResolution(t *testing.T) {
	if dirs := GetImpostorViewDirections(0); dirs != nil {
		t.Errorf("GetImpostorViewDirections(0) = %v, want nil", dirs)
	}
}
