// Package treefunc implements the growth-engine pipeline (spec §4.1):
// TreeFunction and its three concrete stages, TrunkFunction, BranchFunction,
// and GrowthFunction, plus the CrownShape envelope they share.
package treefunc

import (
	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

// TreeFunction is one stage of a tree's growth pipeline. Apply receives the
// Stems collection built by every function executed before it, its own id
// and its parent's id, and returns the (possibly enlarged) Stems. Children
// run afterward, against the graph Apply just grew.
type TreeFunction interface {
	Apply(stems treenode.Stems, selfID, parentID int, rng *geom.RNG) treenode.Stems
	Children() []TreeFunction
}

// Tree owns the root of a TreeFunction pipeline and the seed driving every
// randomized draw made while executing it.
type Tree struct {
	Seed int64
	Root TreeFunction
}

// ExecuteFunctions runs every function in the pipeline in pre-order,
// assigning ids in traversal order starting at 0 — so a Root that is a
// TrunkFunction always receives id 0, matching spec §4.1.1's fixed
// trunk creator_id without the trunk needing to special-case itself. The
// RNG is freshly seeded here and threaded through the whole pass; no
// function may consult any other random source.
func (t *Tree) ExecuteFunctions() treenode.Stems {
	rng := geom.NewRNG(t.Seed)
	var stems treenode.Stems
	nextID := 0

	var walk func(fn TreeFunction, parentID int)
	walk = func(fn TreeFunction, parentID int) {
		selfID := nextID
		nextID++
		stems = fn.Apply(stems, selfID, parentID, rng)
		for _, child := range fn.Children() {
			walk(child, selfID)
		}
	}
	if t.Root != nil {
		walk(t.Root, -1)
	}
	return stems
}
