package mesh

import "github.com/Faultbox/midgard-ro/pkg/geom"

// Recognized attribute names (spec §6). Consumers look these up by name
// and by the kind they expect back.
const (
	AttrRadius           = "radius"
	AttrDirection        = "direction"
	AttrStemID           = "stem_id"
	AttrHierarchyDepth   = "hierarchy_depth"
	AttrPivotPosition    = "pivot_position"
	AttrBranchExtent     = "branch_extent"
	AttrPhyllotaxisAngle = "phyllotaxis_angle"
	AttrVeinDistance     = "vein_distance"
	AttrSmoothAmount     = "smooth_amount"
)

// Attributes is the heterogeneous, name-keyed collection of per-vertex
// attribute arrays carried by a Mesh. Each array is parallel to the
// mesh's Vertices slice.
type Attributes map[string]Array

// Array is a typed, per-vertex attribute column. Exactly one of Floats,
// Ints, or Vec3s is non-nil for a given instance.
type Array struct {
	Floats []float64
	Ints   []int
	Vec3s  []geom.Vec3
}

// Len returns the number of entries in whichever slice is populated.
func (a Array) Len() int {
	switch {
	case a.Floats != nil:
		return len(a.Floats)
	case a.Ints != nil:
		return len(a.Ints)
	case a.Vec3s != nil:
		return len(a.Vec3s)
	default:
		return 0
	}
}

// FloatArray wraps a float64 slice as an Array.
func FloatArray(v []float64) Array { return Array{Floats: v} }

// IntArray wraps an int slice as an Array.
func IntArray(v []int) Array { return Array{Ints: v} }

// Vec3Array wraps a geom.Vec3 slice as an Array.
func Vec3Array(v []geom.Vec3) Array { return Array{Vec3s: v} }

// Float looks up a named attribute expected to be a float array.
func (m *Mesh) Float(name string) ([]float64, bool) {
	arr, ok := m.Attributes[name]
	if !ok || arr.Floats == nil {
		return nil, false
	}
	return arr.Floats, true
}

// Int looks up a named attribute expected to be an int array.
func (m *Mesh) Int(name string) ([]int, bool) {
	arr, ok := m.Attributes[name]
	if !ok || arr.Ints == nil {
		return nil, false
	}
	return arr.Ints, true
}

// Vec3 looks up a named attribute expected to be a Vec3 array.
func (m *Mesh) Vec3(name string) ([]geom.Vec3, bool) {
	arr, ok := m.Attributes[name]
	if !ok || arr.Vec3s == nil {
		return nil, false
	}
	return arr.Vec3s, true
}

// SetFloat sets a float attribute, parallel to Vertices.
func (m *Mesh) SetFloat(name string, v []float64) {
	m.Attributes[name] = FloatArray(v)
}

// SetInt sets an int attribute, parallel to Vertices.
func (m *Mesh) SetInt(name string, v []int) {
	m.Attributes[name] = IntArray(v)
}

// SetVec3 sets a Vec3 attribute, parallel to Vertices.
func (m *Mesh) SetVec3(name string, v []geom.Vec3) {
	m.Attributes[name] = Vec3Array(v)
}
