package treefunc

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

// TrunkFunction seeds the Stems collection with one or more root Nodes
// (spec §4.1.1). It is always the first function an execute pass runs, so
// under Tree.ExecuteFunctions' pre-order id assignment it always receives
// id 0 — satisfying the spec's "the trunk's creator_id is 0" without this
// type needing to hardcode its own id.
type TrunkFunction struct {
	Length        float64 // total trunk length
	Resolution    float64 // segments per unit length
	InitialRadius float64
	Taper         float64 // end radius as a fraction of InitialRadius
	Up            geom.Vec3
	Wobble        float64 // max per-segment axial wobble, radians

	// Stems is the number of independent trunk origins this function
	// seeds in one pass (spec.md's supplemented multi-stem clump
	// support); StemSpacing is the horizontal offset between them.
	Stems       int
	StemSpacing float64

	children []TreeFunction
}

// Children returns the functions that elaborate off this trunk.
func (t *TrunkFunction) Children() []TreeFunction { return t.children }

// AddChild appends a function to run against this trunk's output.
func (t *TrunkFunction) AddChild(fn TreeFunction) { t.children = append(t.children, fn) }

// Apply builds t.Stems (or 1, if unset) root chains, each of
// ⌈Length·Resolution⌉ nodes.
func (t *TrunkFunction) Apply(stems treenode.Stems, selfID, parentID int, rng *geom.RNG) treenode.Stems {
	n := int(math.Ceil(t.Length * t.Resolution))
	if n < 1 {
		n = 1
	}
	segLength := t.Length / float64(n)

	numStems := t.Stems
	if numStems < 1 {
		numStems = 1
	}

	up := t.Up.Normalize()
	if up == (geom.Vec3{}) {
		up = geom.Vec3{Z: 1}
	}

	for s := 0; s < numStems; s++ {
		origin := geom.Vec3{X: float64(s) * t.StemSpacing}
		var root, cur *treenode.Node
		for i := 0; i < n; i++ {
			dir := wobbleDirection(up, t.Wobble, rng)
			radius := geom.LerpF(t.InitialRadius, t.InitialRadius*t.Taper, float64(i)/float64(n))
			node := treenode.NewNode(dir, geom.GetOrthogonalVector(dir), segLength, radius, selfID)
			if root == nil {
				root = node
			} else {
				cur.AddChild(node, 1)
			}
			cur = node
		}
		stems = append(stems, treenode.NewStem(root, origin))
	}
	return stems
}

// wobbleDirection nudges up by a small random angle around a randomly
// chosen horizontal axis, producing the trunk's axial wobble.
func wobbleDirection(up geom.Vec3, wobble float64, rng *geom.RNG) geom.Vec3 {
	if wobble <= 0 {
		return up
	}
	azimuth := rng.Range(0, 2*math.Pi)
	axis := geom.QuatFromAxisAngle(up, azimuth).RotateVec3(geom.GetOrthogonalVector(up))
	angle := rng.Range(0, wobble)
	return geom.QuatFromAxisAngle(axis, angle).RotateVec3(up).Normalize()
}
