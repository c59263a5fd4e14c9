package treefunc

import (
	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

// axis is one contiguous main-axis run of nodes created by the same
// TreeFunction — what spec §4.1.2 calls "each branch of the parent's
// graph" when selecting BranchFunction origins. It follows only
// continuation links (index 0), never laterals, matching the trunk and
// branch chains the functions in this package each build as a single
// spine per origin.
type axis struct {
	nodes []*treenode.Node
	start geom.Vec3
}

// length returns the axis's total arc length.
func (a axis) length() float64 {
	total := 0.0
	for _, n := range a.nodes {
		total += n.Length
	}
	return total
}

// pointAt walks the axis to arc-length position s (clamped to the axis's
// own length), returning the interpolated position, the direction and
// tangent of the node segment containing s, and that node itself.
func (a axis) pointAt(s float64) (pos geom.Vec3, dir, tangent geom.Vec3, node *treenode.Node) {
	if len(a.nodes) == 0 {
		return a.start, geom.Vec3{Z: 1}, geom.Vec3{X: 1}, nil
	}
	if s < 0 {
		s = 0
	}
	cursor := a.start
	remaining := s
	for _, n := range a.nodes {
		if remaining <= n.Length || n == a.nodes[len(a.nodes)-1] {
			frac := 0.0
			if n.Length > 1e-12 {
				frac = geom.Clamp01(remaining / n.Length)
			}
			return cursor.Add(n.Direction.Scale(n.Length * frac)), n.Direction, n.Tangent, n
		}
		cursor = cursor.Add(n.Direction.Scale(n.Length))
		remaining -= n.Length
	}
	last := a.nodes[len(a.nodes)-1]
	return cursor, last.Direction, last.Tangent, last
}

// mainAxisChains finds every maximal continuation-only run of nodes
// created by creatorID, each one anchored at the absolute position its
// first node begins at. A run starts at a stem root created by creatorID,
// or at any node created by creatorID whose graph parent was not (i.e. the
// point where a younger function's elaboration began).
func mainAxisChains(stems treenode.Stems, creatorID int) []axis {
	positions := stems.AbsolutePositions()
	var axes []axis

	var walk func(n *treenode.Node, parent *treenode.Node)
	walk = func(n *treenode.Node, parent *treenode.Node) {
		if n.CreatorID == creatorID && (parent == nil || parent.CreatorID != creatorID) {
			chain := []*treenode.Node{n}
			cur := n
			for {
				next := cur.Continuation()
				if next == nil || next.CreatorID != creatorID {
					break
				}
				chain = append(chain, next)
				cur = next
			}
			axes = append(axes, axis{nodes: chain, start: positions[n]})
		}
		for _, c := range n.Children {
			walk(c.Node, n)
		}
	}
	for i := range stems {
		walk(stems[i].Root, nil)
	}
	return axes
}

// subtreeRoots finds every node created by creatorID whose graph parent
// was not — the attachment points of a function's contribution to the
// tree, and the roots a gravity pass recurses from.
func subtreeRoots(stems treenode.Stems, creatorID int) []*treenode.Node {
	var roots []*treenode.Node
	var walk func(n *treenode.Node, parent *treenode.Node)
	walk = func(n *treenode.Node, parent *treenode.Node) {
		if n.CreatorID == creatorID && (parent == nil || parent.CreatorID != creatorID) {
			roots = append(roots, n)
		}
		for _, c := range n.Children {
			walk(c.Node, n)
		}
	}
	for i := range stems {
		walk(stems[i].Root, nil)
	}
	return roots
}
