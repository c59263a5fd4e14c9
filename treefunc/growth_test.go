package treefunc

import (
	"testing"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

func buildGrowthTree(seed int64, iterations int) treenode.Stems {
	trunk := &TrunkFunction{Length: 2, Resolution: 3, InitialRadius: 0.2, Taper: 0.4, Up: geom.Vec3{Z: 1}}
	growth := &GrowthFunction{
		Iterations:       iterations,
		PreviewIteration: -1,
		ApicalDominance:  0.6,
		GrowThreshold:    0.3,
		SplitThreshold:   0.8,
		CutThreshold:     0.05,
		FlowerThreshold:  0.1,
		SplitAngle:       30,
		BranchLength:     0.3,
		Gravitropism:     0.05,
		Randomness:       0.05,
		GravityStrength:  0.3,
		PhyllotaxisAngle: 137.5,
		ThresholdStep:    0.01,
		ExtensionTaper:   0.9,
		SplitTaper:       0.7,
	}
	trunk.AddChild(growth)
	return (&Tree{Seed: seed, Root: trunk}).ExecuteFunctions()
}

func TestGrowthFunctionSetupAssignsBioNodeInfo(t *testing.T) {
	stems := buildGrowthTree(1, 0)
	sawMeristem, sawIgnored := false, false
	stems.Walk(func(_ *treenode.Stem, n *treenode.Node, _ int) {
		if n.Growth.Kind != treenode.KindBioNodeInfo {
			t.Fatalf("node has GrowthInfo kind %v after setup, want KindBioNodeInfo", n.Growth.Kind)
		}
		switch n.Growth.Bio.Type {
		case treenode.Meristem:
			sawMeristem = true
		case treenode.Ignored:
			sawIgnored = true
		}
	})
	if !sawMeristem {
		t.Error("expected the trunk tip to become Meristem")
	}
	if !sawIgnored {
		t.Error("expected internal trunk nodes to become Ignored")
	}
}

func TestGrowthFunctionGrowsOverIterations(t *testing.T) {
	before := buildGrowthTree(5, 0).NodeCount()
	after := buildGrowthTree(5, 6).NodeCount()
	if after <= before {
		t.Errorf("node count did not increase after growth iterations: before=%d after=%d", before, after)
	}
}

func TestGrowthFunctionDeterministic(t *testing.T) {
	a := buildGrowthTree(23, 5)
	b := buildGrowthTree(23, 5)
	if a.NodeCount() != b.NodeCount() {
		t.Errorf("identically-seeded runs produced different node counts: %d vs %d", a.NodeCount(), b.NodeCount())
	}
}

func TestGrowthFunctionNoNegativeRadii(t *testing.T) {
	stems := buildGrowthTree(42, 10)
	stems.Walk(func(_ *treenode.Stem, n *treenode.Node, _ int) {
		if n.Radius < 0 {
			t.Errorf("node radius went negative: %v", n.Radius)
		}
	})
}
