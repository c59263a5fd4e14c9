package treenode

import "github.com/Faultbox/midgard-ro/pkg/geom"

// BioNodeType enumerates the lifecycle states a GrowthFunction node can be
// in (spec §4.1.3).
type BioNodeType int

const (
	Meristem BioNodeType = iota
	Branch
	Cut
	Ignored
	Dormant
	Flower
)

// String names a BioNodeType for logs and tests.
func (t BioNodeType) String() string {
	switch t {
	case Meristem:
		return "Meristem"
	case Branch:
		return "Branch"
	case Cut:
		return "Cut"
	case Ignored:
		return "Ignored"
	case Dormant:
		return "Dormant"
	case Flower:
		return "Flower"
	default:
		return "Unknown"
	}
}

// GrowthInfoKind tags which variant a GrowthInfo currently holds.
type GrowthInfoKind int

const (
	KindNone GrowthInfoKind = iota
	KindBranchGrowthInfo
	KindBioNodeInfo
)

// GrowthInfo is the tagged union attached to a Node: None,
// BranchGrowthInfo (BranchFunction), or BioNodeInfo (GrowthFunction).
// Exactly one of Branch/Bio is meaningful, selected by Kind.
type GrowthInfo struct {
	Kind   GrowthInfoKind
	Branch BranchGrowthInfo
	Bio    BioNodeInfo
}

// BranchGrowthInfo carries per-node growth state for BranchFunction.
type BranchGrowthInfo struct {
	DesiredLength         float64
	CurrentLength         float64
	OriginRadius          float64
	Position              geom.Vec3 // absolute; recomputed during gravity passes
	CumulatedWeight       float64
	DeviationFromRestPose float64
	Age                   float64
	Inactive              bool
}

// BioNodeInfo carries per-node growth state for GrowthFunction.
type BioNodeInfo struct {
	Type             BioNodeType
	BranchWeight     float64
	CenterOfMass     geom.Vec3
	AbsolutePosition geom.Vec3
	VigorRatio       float64
	Vigor            float64
	Age              float64
	PhilotaxisAngle  float64
	IsLateral        bool
}

// NewBranchGrowthInfo wraps a BranchGrowthInfo into a GrowthInfo.
func NewBranchGrowthInfo(b BranchGrowthInfo) GrowthInfo {
	return GrowthInfo{Kind: KindBranchGrowthInfo, Branch: b}
}

// NewBioNodeInfo wraps a BioNodeInfo into a GrowthInfo.
func NewBioNodeInfo(b BioNodeInfo) GrowthInfo {
	return GrowthInfo{Kind: KindBioNodeInfo, Bio: b}
}

// IsNone reports whether no growth info variant is set.
func (g GrowthInfo) IsNone() bool {
	return g.Kind == KindNone
}
