package treenode

import (
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
)

func buildChain(n int, creatorID int) *Node {
	root := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.1, creatorID)
	cur := root
	for i := 1; i < n; i++ {
		child := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.1, creatorID)
		cur.AddChild(child, 1)
		cur = child
	}
	return root
}

func TestNodeCount(t *testing.T) {
	root := buildChain(5, 0)
	if got := root.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestNodeWalkDepth(t *testing.T) {
	root := buildChain(4, 0)
	var depths []int
	root.Walk(func(n *Node, depth int) {
		depths = append(depths, depth)
	})
	want := []int{0, 1, 2, 3}
	if len(depths) != len(want) {
		t.Fatalf("got %d depths, want %d", len(depths), len(want))
	}
	for i := range want {
		if depths[i] != want[i] {
			t.Errorf("depth[%d] = %d, want %d", i, depths[i], want[i])
		}
	}
}

func TestContinuationIsFirstChild(t *testing.T) {
	root := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.1, 0)
	cont := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.1, 0)
	lateral := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.05, 0)
	root.AddChild(cont, 1)
	root.AddChild(lateral, 0.5)

	if root.Continuation() != cont {
		t.Error("Continuation() should return the first child")
	}
	laterals := root.Laterals()
	if len(laterals) != 1 || laterals[0].Node != lateral {
		t.Error("Laterals() should return every child after the first")
	}
}

func TestGrowthInfoVariant(t *testing.T) {
	n := NewNode(geom.Vec3{Z: 1}, geom.Vec3{X: 1}, 1, 0.1, 0)
	if !n.Growth.IsNone() {
		t.Error("new node should have no growth info")
	}
	n.Growth = NewBioNodeInfo(BioNodeInfo{Type: Meristem, Vigor: 1})
	if n.Growth.Kind != KindBioNodeInfo || n.Growth.Bio.Type != Meristem {
		t.Errorf("growth info variant not set correctly: %+v", n.Growth)
	}
}

func TestStemsNodesByCreator(t *testing.T) {
	root1 := buildChain(3, 0)
	root2 := buildChain(2, 1)
	stems := Stems{NewStem(root1, geom.Vec3{}), NewStem(root2, geom.Vec3{X: 5})}

	got := stems.NodesByCreator(1)
	if len(got) != 2 {
		t.Errorf("NodesByCreator(1) = %d nodes, want 2", len(got))
	}
	if stems.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5", stems.NodeCount())
	}
}
