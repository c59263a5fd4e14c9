package treenode

import "github.com/Faultbox/midgard-ro/pkg/geom"

// Stem is a Node together with its absolute root position. A tree is a
// set of Stems (spec §3): most presets use a single trunk, but the engine
// supports multiple independent trunk origins in one execute pass (e.g. a
// multi-trunk clump).
type Stem struct {
	Root     *Node
	Position geom.Vec3
}

// NewStem creates a Stem anchored at position.
func NewStem(root *Node, position geom.Vec3) Stem {
	return Stem{Root: root, Position: position}
}

// Stems is the mutable collection every TreeFunction reads from and
// writes to during a single execute_functions pass.
type Stems []Stem

// Walk visits every node across every stem in pre-order.
func (s Stems) Walk(visit func(stem *Stem, node *Node, depth int)) {
	for i := range s {
		stem := &s[i]
		stem.Root.Walk(func(n *Node, depth int) {
			visit(stem, n, depth)
		})
	}
}

// NodesByCreator collects every node across every stem whose CreatorID
// matches id. TreeFunctions use this to select the nodes they should
// elaborate.
func (s Stems) NodesByCreator(id int) []*Node {
	var out []*Node
	s.Walk(func(_ *Stem, n *Node, _ int) {
		if n.CreatorID == id {
			out = append(out, n)
		}
	})
	return out
}

// NodeCount returns the total number of nodes across every stem.
func (s Stems) NodeCount() int {
	total := 0
	for _, stem := range s {
		total += stem.Root.Count()
	}
	return total
}
