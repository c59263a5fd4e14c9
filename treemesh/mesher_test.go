package treemesh

import (
	"math"
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

func straightChain(n int) *treenode.Node {
	root := treenode.NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.3, 0)
	cur := root
	for i := 1; i < n; i++ {
		child := treenode.NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.3*float64(n-i)/float64(n), 0)
		cur.AddChild(child, 1)
		cur = child
	}
	return root
}

func TestMeshTreeValidates(t *testing.T) {
	stems := treenode.Stems{treenode.NewStem(straightChain(4), geom.Vec3{})}
	m := (&Mesher{RadialResolution: 6}).MeshTree(stems)
	if err := m.Validate(); err != nil {
		t.Fatalf("MeshTree produced an invalid mesh: %v", err)
	}
	if len(m.Vertices) == 0 {
		t.Fatal("MeshTree produced no vertices")
	}
}

func TestMeshTreeGoldenAnglePhyllotaxis(t *testing.T) {
	stems := treenode.Stems{treenode.NewStem(straightChain(3), geom.Vec3{})}
	m := (&Mesher{RadialResolution: 8}).MeshTree(stems)

	phyllo, ok := m.Float("phyllotaxis_angle")
	if !ok {
		t.Fatal("mesh missing phyllotaxis_angle attribute")
	}
	if len(phyllo) < 9 {
		t.Fatalf("expected at least 9 vertices, got %d", len(phyllo))
	}
	if phyllo[0] != 0 {
		t.Errorf("phyllotaxis_angle[0] = %v, want 0", phyllo[0])
	}
	want := math.Mod(goldenAngle, 2*math.Pi)
	if math.Abs(phyllo[8]-want) > 1e-4 {
		t.Errorf("phyllotaxis_angle[8] = %v, want %v", phyllo[8], want)
	}
}

func TestMeshTreeRingSharesPhyllotaxisValue(t *testing.T) {
	stems := treenode.Stems{treenode.NewStem(straightChain(2), geom.Vec3{})}
	m := (&Mesher{RadialResolution: 5}).MeshTree(stems)
	phyllo, _ := m.Float("phyllotaxis_angle")
	first := phyllo[0]
	for i := 1; i < 5; i++ {
		if phyllo[i] != first {
			t.Errorf("phyllotaxis_angle[%d] = %v, want %v (all vertices in a ring must share a value)", i, phyllo[i], first)
		}
	}
}

func TestMeshTreeAttributesParallelToVertices(t *testing.T) {
	stems := treenode.Stems{treenode.NewStem(straightChain(5), geom.Vec3{})}
	m := (&Mesher{RadialResolution: 6, SmoothIterations: 2}).MeshTree(stems)
	for name, arr := range m.Attributes {
		if arr.Len() != len(m.Vertices) {
			t.Errorf("attribute %q has %d entries, want %d", name, arr.Len(), len(m.Vertices))
		}
	}
}
