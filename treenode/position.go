package treenode

import "github.com/Faultbox/midgard-ro/pkg/geom"

// AbsolutePositions recomputes the absolute start position of every node
// from its stem's root anchor, per spec §4.1.2's gravity-pass rule:
// child_pos = pos + direction*length*position_in_parent. Every call
// derives positions fresh from the root; the position fields in a node's
// growth info are copies that the gravity passes refresh from this map.
func (s Stems) AbsolutePositions() map[*Node]geom.Vec3 {
	out := make(map[*Node]geom.Vec3)
	for i := range s {
		stem := &s[i]
		assignPositions(stem.Root, stem.Position, out)
	}
	return out
}

func assignPositions(n *Node, pos geom.Vec3, out map[*Node]geom.Vec3) {
	out[n] = pos
	for _, c := range n.Children {
		childPos := pos.Add(n.Direction.Scale(n.Length * c.PositionInParent))
		assignPositions(c.Node, childPos, out)
	}
}
