// Package treenode defines the skeletal tree graph (spec §3): Node,
// ChildLink, the GrowthInfo variant, and Stem. A Node exclusively owns its
// children — the graph is an acyclic tree with no back-pointers, grounded
// on the parent/children hierarchy the teacher codebase walks when
// building a skinned model from its node list.
package treenode

import "github.com/Faultbox/midgard-ro/pkg/geom"

// Node is one element of the tree skeleton.
type Node struct {
	Direction geom.Vec3 // unit vector
	Tangent   geom.Vec3 // unit vector, orthogonal to Direction
	Length    float64
	Radius    float64
	CreatorID int // identifies which TreeFunction created this node

	Children []ChildLink

	Growth GrowthInfo
}

// ChildLink attaches a child Node to its parent at a point along the
// parent's length. The first child (index 0) is always the branch
// continuation; any further children are splits or laterals.
type ChildLink struct {
	Node             *Node
	PositionInParent float64 // in [0, 1]
}

// NewNode returns a Node with the given direction/tangent/length/radius
// and no children or growth info.
func NewNode(direction, tangent geom.Vec3, length, radius float64, creatorID int) *Node {
	return &Node{
		Direction: direction,
		Tangent:   tangent,
		Length:    length,
		Radius:    radius,
		CreatorID: creatorID,
	}
}

// AddChild appends a child link and returns it.
func (n *Node) AddChild(child *Node, positionInParent float64) *ChildLink {
	n.Children = append(n.Children, ChildLink{Node: child, PositionInParent: positionInParent})
	return &n.Children[len(n.Children)-1]
}

// Continuation returns the branch-continuation child (index 0), or nil if
// this node has no children.
func (n *Node) Continuation() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0].Node
}

// Laterals returns every child after the branch continuation.
func (n *Node) Laterals() []ChildLink {
	if len(n.Children) <= 1 {
		return nil
	}
	return n.Children[1:]
}

// Walk visits n and every descendant in pre-order, depth-first, passing
// each node's accumulated depth starting at 0 for n itself.
func (n *Node) Walk(visit func(node *Node, depth int)) {
	n.walk(0, visit)
}

func (n *Node) walk(depth int, visit func(node *Node, depth int)) {
	visit(n, depth)
	for _, c := range n.Children {
		c.Node.walk(depth+1, visit)
	}
}

// Count returns the number of nodes in the subtree rooted at n, inclusive.
func (n *Node) Count() int {
	count := 1
	for _, c := range n.Children {
		count += c.Node.Count()
	}
	return count
}
