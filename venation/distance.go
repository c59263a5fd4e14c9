package venation

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/mesh"
)

// ComputeVeinDistances adds the "vein_distance" attribute to m: for every
// vertex, its minimum distance (projected onto XY) to any vein segment,
// with the root handled as a point (spec §4.3 step 4). It is a no-op if
// veins is empty, leaving the attribute unset.
func ComputeVeinDistances(m *mesh.Mesh, veins []VeinNode) {
	if len(veins) == 0 {
		return
	}
	dist := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		p := v.XY()
		min := math.MaxFloat64
		for _, vein := range veins {
			var d float64
			if vein.Parent < 0 {
				d = p.Distance(vein.Position)
			} else {
				d = pointSegmentDistance(p, veins[vein.Parent].Position, vein.Position)
			}
			if d < min {
				min = d
			}
		}
		dist[i] = min
	}
	m.SetFloat(mesh.AttrVeinDistance, dist)
}
