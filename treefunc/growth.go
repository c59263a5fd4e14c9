package treefunc

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ro/internal/obslog"
	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/treenode"
)

// LateralParams controls where dormant lateral buds are sown along a
// trunk segment when lateral branching is enabled.
type LateralParams struct {
	Start   float64 // [0,1] of total trunk length
	End     float64 // [0,1] of total trunk length
	Density float64 // buds per unit arc length
	Angle   float64 // degrees, phyllotactic tilt off the trunk direction
}

// GrowthFunction implements the L-system-like biological growth pass
// (spec §4.1.3): existing nodes become BioNodeInfo tips and, over a fixed
// number of iterations, compete for a vigor budget that determines which
// tips extend, split, flower, or die back.
type GrowthFunction struct {
	Iterations       int
	PreviewIteration int // -1 disables the preview cap
	ApicalDominance  float64
	GrowThreshold    float64
	SplitThreshold   float64
	CutThreshold     float64
	FlowerThreshold  float64
	SplitAngle       float64 // degrees
	BranchLength     float64
	Gravitropism     float64
	Randomness       float64
	GravityStrength  float64
	PhyllotaxisAngle float64 // degrees
	ThresholdStep    float64

	LateralActivation float64
	DormantFactor     float64
	ExtensionTaper    float64
	SplitTaper        float64

	EnableFlowering        bool
	EnableLateralBranching bool
	Lateral                LateralParams

	children []TreeFunction
}

func (g *GrowthFunction) Children() []TreeFunction { return g.children }
func (g *GrowthFunction) AddChild(fn TreeFunction) { g.children = append(g.children, fn) }

// Apply converts every node created by parentID into a BioNodeInfo tip,
// then runs up to effective_iterations growth iterations across every
// stem independently.
func (g *GrowthFunction) Apply(stems treenode.Stems, selfID, parentID int, rng *geom.RNG) treenode.Stems {
	g.setup(stems, parentID, selfID, rng)

	effective := g.Iterations
	if g.PreviewIteration >= 0 && g.PreviewIteration < effective {
		effective = g.PreviewIteration
	}

	currentCutThreshold := g.CutThreshold
	phyllotaxis := 0.0

	for iter := 0; iter < effective; iter++ {
		for i := range stems {
			root := stems[i].Root
			rootFlux := g.vigorRatioPass(root)

			target := 1 + math.Pow(float64(iter+1), 1.5)
			if rootFlux < target {
				currentCutThreshold -= g.ThresholdStep
			} else {
				currentCutThreshold += g.ThresholdStep
			}
			if currentCutThreshold < 0 {
				currentCutThreshold = 0
			}

			g.distributeAndGrow(root, 1, selfID, currentCutThreshold, &phyllotaxis, rng)
		}

		positions := stems.AbsolutePositions()
		for i := range stems {
			g.applyGravityPass(stems[i].Root, positions)
		}
		obslog.Debug("growth: iteration complete", zap.Int("creator_id", selfID), zap.Int("iteration", iter), zap.Float64("cut_threshold", currentCutThreshold))
	}
	return stems
}

// setup converts every node created by parentID into a BioNodeInfo tip:
// leaves become Meristem, internal nodes Ignored. When lateral branching
// is enabled, leaves are kept Ignored instead (tip growth suppressed) and
// dormant buds are sown along the main axis between Lateral.Start and
// Lateral.End.
func (g *GrowthFunction) setup(stems treenode.Stems, parentID, selfID int, rng *geom.RNG) {
	for _, n := range stems.NodesByCreator(parentID) {
		t := treenode.Ignored
		if len(n.Children) == 0 {
			t = treenode.Meristem
		}
		n.Growth = treenode.NewBioNodeInfo(treenode.BioNodeInfo{Type: t})
	}
	if !g.EnableLateralBranching {
		return
	}
	for _, n := range stems.NodesByCreator(parentID) {
		if len(n.Children) == 0 {
			n.Growth.Bio.Type = treenode.Ignored
		}
	}

	density := g.Lateral.Density
	if density <= 0 {
		obslog.Warn("growth: lateral bud density not positive, skipping lateral sowing", zap.Float64("value", g.Lateral.Density))
		return
	}
	spacing := 1 / density
	for _, ax := range mainAxisChains(stems, parentID) {
		total := ax.length()
		lo := g.Lateral.Start * total
		hi := g.Lateral.End * total
		azimuth := 0.0
		for s := lo; s <= hi; s += spacing {
			_, dir, tangent, hostNode := ax.pointAt(s)
			if hostNode == nil {
				continue
			}
			azimuth += g.PhyllotaxisAngle * math.Pi / 180
			rotatedTangent := geom.QuatFromAxisAngle(dir, azimuth).RotateVec3(tangent).Normalize()
			budDir := geom.Lerp(dir, rotatedTangent, g.Lateral.Angle/90).Normalize()
			if budDir == (geom.Vec3{}) {
				budDir = dir
			}
			bud := treenode.NewNode(budDir, geom.GetOrthogonalVector(budDir), 0, hostNode.Radius*0.2, selfID)
			bud.Growth = treenode.NewBioNodeInfo(treenode.BioNodeInfo{Type: treenode.Dormant, IsLateral: true})
			hostNode.AddChild(bud, rng.Range(0, 1))
		}
	}
}

// vigorRatioPass recurses leaves-to-root recording each child's
// vigor_ratio and returning the flux this node contributes upward, per
// spec §4.1.3 step 1. Children are visited left-to-right, accumulating L
// (the flux of children already processed) so the first child — the
// branch continuation — naturally receives a vigor_ratio of 1: there is
// no earlier competition to divide against.
func (g *GrowthFunction) vigorRatioPass(n *treenode.Node) float64 {
	if n.Growth.Kind != treenode.KindBioNodeInfo {
		return 0
	}
	switch n.Growth.Bio.Type {
	case treenode.Meristem:
		return 1
	case treenode.Dormant:
		n.Growth.Bio.VigorRatio = 0.3
		return 0.3
	case treenode.Branch, treenode.Ignored:
		if len(n.Children) == 0 {
			return 0
		}
		t := g.ApicalDominance
		L := 0.0
		for _, c := range n.Children {
			f := g.vigorRatioPass(c.Node)
			denom := t*L + (1-t)*f + growthEpsilon
			ratio := 1.0
			if denom > 0 {
				ratio = 1 - (t*L)/denom
			}
			if c.Node.Growth.Kind == treenode.KindBioNodeInfo {
				c.Node.Growth.Bio.VigorRatio = ratio
			}
			L += f
		}
		return L
	default:
		return 0
	}
}

// distributeAndGrow walks top-down distributing vigor and applying growth
// rules, per spec §4.1.3 steps 3-4. New children appended by this pass are
// not themselves recursed into until the next iteration.
func (g *GrowthFunction) distributeAndGrow(n *treenode.Node, vigor float64, selfID int, cutThreshold float64, phyllotaxis *float64, rng *geom.RNG) {
	if n.Growth.Kind != treenode.KindBioNodeInfo {
		for _, c := range n.Children {
			g.distributeAndGrow(c.Node, vigor, selfID, cutThreshold, phyllotaxis, rng)
		}
		return
	}
	n.Growth.Bio.Vigor = vigor
	existing := append([]treenode.ChildLink(nil), n.Children...)

	g.applyGrowthRule(n, selfID, cutThreshold, phyllotaxis, rng)

	for _, c := range existing {
		childVigor := vigor * c.Node.Growth.Bio.VigorRatio
		if c.Node.Growth.Kind == treenode.KindBioNodeInfo && c.Node.Growth.Bio.Type == treenode.Dormant {
			childVigor = vigor * (1 - g.ApicalDominance) * g.DormantFactor
		}
		g.distributeAndGrow(c.Node, childVigor, selfID, cutThreshold, phyllotaxis, rng)
	}
}

// applyGrowthRule applies spec §4.1.3 step 4's per-node rules.
func (g *GrowthFunction) applyGrowthRule(n *treenode.Node, selfID int, cutThreshold float64, phyllotaxis *float64, rng *geom.RNG) {
	bio := &n.Growth.Bio
	vigor := bio.Vigor

	if bio.Type == treenode.Dormant && vigor > g.LateralActivation {
		bio.Type = treenode.Meristem
		n.Length = g.BranchLength * (vigor + 0.1)
	}

	if bio.Type != treenode.Meristem {
		if bio.Type != treenode.Ignored && bio.Type != treenode.Dormant && vigor > g.GrowThreshold {
			n.Radius = (1 - math.Exp(-bio.Age*0.01) + 0.01) * 0.5
		}
		bio.Age += 1
		return
	}

	if vigor < cutThreshold {
		bio.Type = treenode.Cut
		bio.Age += 1
		return
	}
	if g.EnableFlowering && vigor < g.FlowerThreshold {
		bio.Type = treenode.Flower
		bio.Age += 1
		return
	}
	if vigor > g.GrowThreshold {
		dir := n.Direction.
			Add(geom.Vec3{Z: 1}.Scale(g.Gravitropism)).
			Add(rng.RandomVec(1).Scale(g.Randomness)).
			Normalize()
		if dir == (geom.Vec3{}) {
			dir = n.Direction
		}
		child := treenode.NewNode(dir, geom.GetOrthogonalVector(dir), g.BranchLength, n.Radius*g.ExtensionTaper, selfID)
		child.Growth = treenode.NewBioNodeInfo(treenode.BioNodeInfo{Type: treenode.Meristem})
		n.AddChild(child, 1)
		bio.Type = treenode.Branch

		if vigor > g.SplitThreshold {
			*phyllotaxis += g.PhyllotaxisAngle * math.Pi / 180
			tangent := geom.Vec3{X: math.Cos(*phyllotaxis), Y: math.Sin(*phyllotaxis)}
			tangent = geom.GetLookAtRot(n.Direction).RotateVec3(tangent)
			splitDir := geom.Lerp(n.Direction, tangent, g.SplitAngle/90).Normalize()
			if splitDir == (geom.Vec3{}) {
				splitDir = n.Direction
			}
			split := treenode.NewNode(splitDir, geom.GetOrthogonalVector(splitDir), g.BranchLength, n.Radius*g.SplitTaper, selfID)
			split.Growth = treenode.NewBioNodeInfo(treenode.BioNodeInfo{Type: treenode.Meristem, IsLateral: true, PhilotaxisAngle: *phyllotaxis})
			n.AddChild(split, rng.Range(0, 1))
		}
	}
	bio.Age += 1
}

// applyGravityPass bends every non-Ignored BioNodeInfo node toward the
// ground, per spec §4.1.3 step 5: bendiness = exp(-(age/2+vigor)) in place
// of BranchFunction's weight-based displacement. Original trunk segments
// (type Ignored) never bend.
func (g *GrowthFunction) applyGravityPass(root *treenode.Node, positions map[*treenode.Node]geom.Vec3) {
	g.rotateForGravity(root, geom.QuatIdentity())
	root.Walk(func(n *treenode.Node, _ int) {
		if n.Growth.Kind == treenode.KindBioNodeInfo {
			n.Growth.Bio.AbsolutePosition = positions[n]
		}
	})
}

const gravityAngleMultiplier = 0.02

func (g *GrowthFunction) rotateForGravity(n *treenode.Node, inherited geom.Quat) {
	if n.Growth.Kind != treenode.KindBioNodeInfo || n.Growth.Bio.Type == treenode.Ignored {
		for _, c := range n.Children {
			g.rotateForGravity(c.Node, inherited)
		}
		return
	}

	bio := &n.Growth.Bio
	bendiness := math.Exp(-(bio.Age/2 + bio.Vigor))
	displacement := bendiness * g.GravityStrength * gravityAngleMultiplier

	axis := n.Direction.Cross(geom.Vec3{Z: -1})
	if axis.LengthSq() < 1e-12 {
		axis = geom.GetOrthogonalVector(n.Direction)
	} else {
		axis = axis.Normalize()
	}
	local := geom.QuatFromAxisAngle(axis, displacement)
	total := local.Mul(inherited)
	n.Direction = total.RotateVec3(n.Direction).Normalize()

	for _, c := range n.Children {
		g.rotateForGravity(c.Node, total)
	}
}
