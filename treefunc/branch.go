package treefunc

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ro/internal/obslog"
	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/pkg/property"
	"github.com/Faultbox/midgard-ro/treenode"
)

// SplitParams controls the occasional extra fork BranchFunction adds
// alongside a growing tip's main extension.
type SplitParams struct {
	RadiusFactor float64 // (0,1), relative to the splitting node's radius
	AngleDegrees float64
	Probability  float64 // per growth step, scaled by 1/Resolution
}

// GravityParams controls how strongly a branch bends toward the ground
// during the gravity relaxation pass applied between growth batches.
type GravityParams struct {
	Strength     float64
	Stiffness    float64
	UpAttraction float64
}

// DistributionParams controls where along a parent branch new origins are
// placed.
type DistributionParams struct {
	Start              float64 // [0,1]
	End                float64 // [0,1]
	Density            float64 // origins per unit arc length, >0
	PhyllotaxisDegrees float64
}

// CrownParams controls the envelope that biases branch length and angle by
// height within the crown.
type CrownParams struct {
	Shape          CrownShape
	Height         float64
	BaseSize       float64 // [0,1]
	AngleVariation float64
}

// BranchFunction elaborates lateral branches off the nodes its parent
// function created (spec §4.1.2).
type BranchFunction struct {
	Length      property.Property
	StartRadius property.Property
	EndRadius   float64 // taper factor applied to StartRadius along the branch
	BreakChance float64
	Resolution  float64
	Randomness  property.Property
	Flatness    float64
	StartAngle  float64 // degrees, [-180,180]

	Split        SplitParams
	Gravity      GravityParams
	Distribution DistributionParams
	Crown        CrownParams

	children []TreeFunction
}

func (b *BranchFunction) Children() []TreeFunction { return b.children }
func (b *BranchFunction) AddChild(fn TreeFunction) { b.children = append(b.children, fn) }

const growthEpsilon = 1e-3

// Apply selects origins along every main-axis chain created by parentID,
// seeds a growing tip at each, then drains a FIFO worklist of growing tips
// in batches, relaxing gravity once per batch (spec §9's queue-driven
// growth note).
func (b *BranchFunction) Apply(stems treenode.Stems, selfID, parentID int, rng *geom.RNG) treenode.Stems {
	resolution := b.Resolution
	if resolution <= 0 {
		obslog.Warn("branch: clamping resolution", zap.Float64("value", b.Resolution), zap.Float64("clamped_to", 1))
		resolution = 1
	}
	density := b.Distribution.Density
	if density <= 0 {
		obslog.Warn("branch: clamping distribution density", zap.Float64("value", b.Distribution.Density), zap.Float64("clamped_to", 1))
		density = 1
	}

	var queue []*treenode.Node
	for _, ax := range mainAxisChains(stems, parentID) {
		branchLength := ax.length()
		if branchLength <= 0 {
			continue
		}
		lo := b.Distribution.Start * branchLength
		hi := b.Distribution.End * branchLength
		spacing := 1 / density
		if spacing <= 0 {
			continue
		}
		azimuth := 0.0
		for s := lo; s <= hi; s += spacing {
			tip := b.seedOrigin(ax, s, branchLength, selfID, rng, &azimuth)
			if tip != nil {
				queue = append(queue, tip)
			}
		}
	}

	for batch := 0; len(queue) > 0; batch++ {
		var next []*treenode.Node
		for _, tip := range queue {
			if child := b.growStep(tip, rng); child != nil {
				next = append(next, child)
			}
		}
		obslog.Debug("branch: growth batch complete", zap.Int("creator_id", selfID), zap.Int("batch", batch), zap.Int("grown", len(next)))
		b.applyGravityPass(stems, selfID)
		queue = next
	}
	return stems
}

// seedOrigin places a new growing tip at arc-length position s along ax,
// attaches it to the underlying node, and returns it as the first worklist
// entry for that origin.
func (b *BranchFunction) seedOrigin(ax axis, s, branchLength float64, selfID int, rng *geom.RNG, azimuth *float64) *treenode.Node {
	pos, parentDir, baseTangent, hostNode := ax.pointAt(s)
	if hostNode == nil {
		return nil
	}

	jitter := rng.Range(-0.05, 0.05)
	*azimuth += b.Distribution.PhyllotaxisDegrees*math.Pi/180 + jitter
	tangent := geom.QuatFromAxisAngle(parentDir, *azimuth).RotateVec3(baseTangent).Normalize()

	r := 0.0
	if b.Crown.Height > 0 && b.Crown.BaseSize > 0 {
		r = geom.Clamp01(pos.Z / (b.Crown.Height * b.Crown.BaseSize))
	}
	desiredLength := b.Length.Eval(s/branchLength, rng) * b.Crown.Shape.ShapeRatio(r)
	biasedAngle := b.StartAngle + b.Crown.AngleVariation*(1-2*Conical.ShapeRatio(r))

	dir := geom.Lerp(parentDir, tangent, biasedAngle/90).Normalize()
	if dir == (geom.Vec3{}) {
		dir = parentDir
	}

	originRadius := b.StartRadius.Eval(s/branchLength, rng)
	tip := treenode.NewNode(dir, geom.GetOrthogonalVector(dir), 0, originRadius, selfID)
	tip.Growth = treenode.NewBranchGrowthInfo(treenode.BranchGrowthInfo{
		DesiredLength: desiredLength,
		OriginRadius:  originRadius,
		Position:      pos,
	})

	frac := 0.0
	if hostNode.Length > 1e-12 {
		// ax.pointAt already walked the exact node; recompute the local
		// fraction from the returned position for the attach point.
		frac = geom.Clamp01(pos.Sub(hostNodeStart(ax, hostNode)).Length() / hostNode.Length)
	}
	hostNode.AddChild(tip, frac)

	if desiredLength <= 0 {
		tip.Growth.Branch.Inactive = true
		return nil
	}
	return tip
}

// hostNodeStart finds the absolute start position of node within ax by
// re-walking the axis's recorded start and segment lengths.
func hostNodeStart(ax axis, node *treenode.Node) geom.Vec3 {
	cursor := ax.start
	for _, n := range ax.nodes {
		if n == node {
			return cursor
		}
		cursor = cursor.Add(n.Direction.Scale(n.Length))
	}
	return cursor
}

// growStep advances one growing tip by a single resolution-sized step,
// per spec §4.1.2's per-origin growth loop. It returns the newly appended
// child if growth should continue, or nil if this origin is done (either
// terminated or grown to desired length).
func (b *BranchFunction) growStep(tip *treenode.Node, rng *geom.RNG) *treenode.Node {
	info := tip.Growth.Branch
	resolution := b.Resolution
	if resolution <= 0 {
		resolution = 1
	}

	if rng.Bool(b.BreakChance / resolution) {
		tip.Growth.Branch.Inactive = true
		return nil
	}

	factor := 0.0
	if info.DesiredLength > growthEpsilon {
		factor = info.CurrentLength / info.DesiredLength
	}
	childRadius := geom.LerpF(info.OriginRadius, info.OriginRadius*b.EndRadius, factor)
	childLength := math.Min(1/resolution, info.DesiredLength-info.CurrentLength)
	if childLength <= 0 {
		tip.Growth.Branch.Inactive = true
		return nil
	}

	randomness := b.Randomness.Eval(factor, rng)
	direction := tip.Direction.
		Add(rng.RandomVec(b.Flatness).Scale(randomness / resolution)).
		Add(geom.Vec3{Z: 1}.Scale(b.Gravity.UpAttraction)).
		Normalize()

	if direction.Z < 0 {
		direction.Z -= direction.Z * 2 / (2 + info.Position.Z)
	}
	direction = direction.Normalize()

	if (info.Position.Add(direction)).Z*tip.Length*4 < 0 {
		tip.Growth.Branch.Inactive = true
		return nil
	}

	child := treenode.NewNode(direction, geom.GetOrthogonalVector(direction), childLength, childRadius, tip.CreatorID)
	childPos := info.Position.Add(tip.Direction.Scale(tip.Length))
	child.Growth = treenode.NewBranchGrowthInfo(treenode.BranchGrowthInfo{
		DesiredLength: info.DesiredLength,
		CurrentLength: info.CurrentLength + childLength,
		OriginRadius:  info.OriginRadius,
		Position:      childPos,
		Age:           info.Age + 1/resolution,
	})
	tip.AddChild(child, 1)

	if rng.Bool(b.Split.Probability / resolution) {
		b.addSplit(tip, rng)
	}

	if child.Growth.Branch.CurrentLength >= child.Growth.Branch.DesiredLength-growthEpsilon {
		return nil
	}
	return child
}

// addSplit attaches a one-off decorative fork off node, per spec §4.1.2
// step 5. Splits do not themselves requeue for further growth.
func (b *BranchFunction) addSplit(node *treenode.Node, rng *geom.RNG) {
	ortho := geom.GetOrthogonalVector(node.Direction)
	nudged := ortho.Add(geom.Vec3{Z: 1}.Scale(b.Gravity.UpAttraction * b.Flatness)).Normalize()
	dir := geom.Lerp(nudged, node.Direction, b.Split.AngleDegrees/90).Normalize()
	if dir == (geom.Vec3{}) {
		dir = node.Direction
	}
	radius := node.Radius * b.Split.RadiusFactor
	length := math.Max(1/math.Max(b.Resolution, 1), 1e-3)

	split := treenode.NewNode(dir, geom.GetOrthogonalVector(dir), length, radius, node.CreatorID)
	split.Growth = treenode.NewBranchGrowthInfo(treenode.BranchGrowthInfo{
		DesiredLength: length,
		CurrentLength: length,
		OriginRadius:  radius,
		Inactive:      true,
	})
	node.AddChild(split, rng.Float64())
}

// applyGravityPass relaxes every branch this function has grown so far
// toward the ground, per spec §4.1.2's gravity pass.
func (b *BranchFunction) applyGravityPass(stems treenode.Stems, selfID int) {
	resolution := b.Resolution
	if resolution <= 0 {
		resolution = 1
	}
	for _, root := range subtreeRoots(stems, selfID) {
		propagateInactive(root)
		computeCumulatedWeight(root)
		rotateForGravity(root, geom.QuatIdentity(), b.Gravity, resolution)
	}
	positions := stems.AbsolutePositions()
	for _, root := range subtreeRoots(stems, selfID) {
		root.Walk(func(n *treenode.Node, _ int) {
			if n.Growth.Kind == treenode.KindBranchGrowthInfo {
				n.Growth.Branch.Position = positions[n]
			}
		})
	}
}

// propagateInactive marks a node inactive if any child is, post-order.
func propagateInactive(n *treenode.Node) bool {
	inactive := n.Growth.Kind == treenode.KindBranchGrowthInfo && n.Growth.Branch.Inactive
	for _, c := range n.Children {
		if propagateInactive(c.Node) {
			inactive = true
		}
	}
	if n.Growth.Kind == treenode.KindBranchGrowthInfo {
		n.Growth.Branch.Inactive = inactive
	}
	return inactive
}

// computeCumulatedWeight sets node.length + sum(child weights), post-order.
func computeCumulatedWeight(n *treenode.Node) float64 {
	weight := n.Length
	for _, c := range n.Children {
		weight += computeCumulatedWeight(c.Node)
	}
	if n.Growth.Kind == treenode.KindBranchGrowthInfo {
		n.Growth.Branch.CumulatedWeight = weight
	}
	return weight
}

// rotateForGravity is the pre-order rotation pass: each node computes its
// own bend from its weight and age, composes it with the rotation
// inherited from its ancestors, and passes the combined rotation down to
// its children so their bends accumulate rather than reset.
func rotateForGravity(n *treenode.Node, inherited geom.Quat, gravity GravityParams, resolution float64) {
	if n.Growth.Kind != treenode.KindBranchGrowthInfo {
		for _, c := range n.Children {
			rotateForGravity(c.Node, inherited, gravity, resolution)
		}
		return
	}

	info := &n.Growth.Branch
	horizontality := 1 - math.Abs(n.Direction.Z)
	weight := math.Max(info.CumulatedWeight, 0)
	displacement := horizontality * math.Sqrt(weight) * gravity.Strength /
		(resolution * resolution) / 1000 / (1 + info.Age) *
		math.Exp(-math.Abs(info.DeviationFromRestPose)/resolution*gravity.Stiffness)

	axis := n.Direction.Cross(geom.Vec3{Z: -1})
	if axis.LengthSq() < 1e-12 {
		axis = geom.GetOrthogonalVector(n.Direction)
	} else {
		axis = axis.Normalize()
	}

	local := geom.QuatFromAxisAngle(axis, displacement)
	total := local.Mul(inherited)

	n.Direction = total.RotateVec3(n.Direction).Normalize()
	info.DeviationFromRestPose += displacement
	info.Age += 1 / resolution

	for _, c := range n.Children {
		rotateForGravity(c.Node, total, gravity, resolution)
	}
}
