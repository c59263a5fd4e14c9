package venation

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ro/internal/obslog"
	"github.com/Faultbox/midgard-ro/pkg/geom"
)

// VenationType selects whether the space-colonization growth loop may
// merge converging veins into loops.
type VenationType int

const (
	Open VenationType = iota
	Closed
)

// VeinNode is one node of the grown vein tree. For Closed venation a loop
// merge attaches a new node to a nearby non-ancestor vein instead of the
// vein that grew it; every node still has exactly one Parent, so the
// result remains a tree.
type VeinNode struct {
	Position geom.Vec2
	Parent   int // -1 for the root
	Children []int
	Width    float64
}

// Generator runs the space-colonization venation algorithm within a leaf
// contour (spec §4.3).
type Generator struct {
	Type               VenationType
	VeinDensity        float64
	KillDistance       float64
	AttractionDistance float64
	GrowthStepSize     float64
	MaxIterations      int
	Seed               int64
}

const maxAuxinCount = 5000

// GenerateVeins runs the full algorithm against a closed contour and
// returns the grown vein node list, widths already computed.
func (g *Generator) GenerateVeins(contour []geom.Vec2) []VeinNode {
	if len(contour) < 3 {
		return nil
	}
	rng := geom.NewRNG(g.Seed)

	area := math.Abs(polygonArea(contour))
	count := int(math.Floor(g.VeinDensity * area))
	if count > maxAuxinCount {
		obslog.Warn("venation: clamping auxin count", zap.Int("requested", count), zap.Int("clamped_to", maxAuxinCount))
		count = maxAuxinCount
	}
	if count <= 0 {
		return nil
	}

	auxins := sampleAuxins(contour, count, rng)
	active := make([]bool, len(auxins))
	for i := range active {
		active[i] = true
	}

	veins := []VeinNode{{Position: seedRoot(contour, g.GrowthStepSize), Parent: -1, Width: 1}}

	killRadius := g.KillDistance
	if g.Type == Closed {
		killRadius = 0.5 * g.KillDistance
	}

	for iter := 0; iter < g.MaxIterations; iter++ {
		grew := g.growOnce(contour, auxins, active, &veins, killRadius)
		obslog.Debug("venation: iteration complete", zap.Int("iteration", iter), zap.Int("nodes", len(veins)), zap.Bool("grew", grew))
		if !grew {
			break
		}
	}

	computeWidths(veins)
	return veins
}

// sampleAuxins rejection-samples count points within contour's bounding
// box, keeping only those inside the contour by an even-odd test.
func sampleAuxins(contour []geom.Vec2, count int, rng *geom.RNG) []geom.Vec2 {
	minX, maxX, minY, maxY := boundingBox(contour)
	auxins := make([]geom.Vec2, 0, count)
	guard := 0
	maxGuard := count*200 + 1000
	for len(auxins) < count && guard < maxGuard {
		guard++
		p := geom.Vec2{X: rng.Range(minX, maxX), Y: rng.Range(minY, maxY)}
		if pointInPolygon(p, contour) {
			auxins = append(auxins, p)
		}
	}
	return auxins
}

// seedRoot places the vein root near the leaf base (bottom-center of the
// bounding box), snapping to the contour boundary and stepping inward by
// growthStep if the bottom-center point lies outside the contour.
func seedRoot(contour []geom.Vec2, growthStep float64) geom.Vec2 {
	minX, maxX, minY, _ := boundingBox(contour)
	base := geom.Vec2{X: (minX + maxX) / 2, Y: minY}
	if pointInPolygon(base, contour) {
		return base
	}
	nearest := nearestContourPoint(base, contour)
	dir := polygonCentroid(contour).Sub(nearest).Normalize()
	if dir == (geom.Vec2{}) {
		return nearest
	}
	return nearest.Add(dir.Scale(growthStep))
}

// growOnce runs a single space-colonization iteration: attraction,
// growth, and auxin kill. It returns false once no vein grew or no
// auxin remains active, signaling the caller to stop.
func (g *Generator) growOnce(contour []geom.Vec2, auxins []geom.Vec2, active []bool, veins *[]VeinNode, killRadius float64) bool {
	hash := NewSpatialHash2D(g.AttractionDistance)
	for i, v := range *veins {
		hash.Insert(i, v.Position)
	}

	accum := make([]geom.Vec2, len(*veins))
	counts := make([]int, len(*veins))
	anyActive := false
	for i, p := range auxins {
		if !active[i] {
			continue
		}
		anyActive = true
		nearest := hash.Nearest(p, g.AttractionDistance)
		if nearest < 0 {
			continue
		}
		dir := p.Sub((*veins)[nearest].Position).Normalize()
		accum[nearest] = accum[nearest].Add(dir)
		counts[nearest]++
	}
	if !anyActive {
		return false
	}

	type pending struct {
		parent int
		pos    geom.Vec2
	}
	var spawned []pending
	for vi := range *veins {
		if counts[vi] == 0 {
			continue
		}
		dir := accum[vi].Scale(1 / float64(counts[vi])).Normalize()
		if dir == (geom.Vec2{}) {
			continue
		}
		newPos := (*veins)[vi].Position.Add(dir.Scale(g.GrowthStepSize))
		if !pointInPolygon(newPos, contour) {
			continue
		}

		attachTo := vi
		if g.Type == Closed {
			if other := findLoopCandidate(hash, *veins, vi, newPos, 3*g.GrowthStepSize); other >= 0 {
				attachTo = other
			}
		}
		spawned = append(spawned, pending{parent: attachTo, pos: newPos})
	}
	if len(spawned) == 0 {
		return false
	}

	var grown []geom.Vec2
	for _, s := range spawned {
		idx := len(*veins)
		*veins = append(*veins, VeinNode{Position: s.pos, Parent: s.parent, Width: 1})
		(*veins)[s.parent].Children = append((*veins)[s.parent].Children, idx)
		grown = append(grown, s.pos)
	}

	for i, p := range auxins {
		if !active[i] {
			continue
		}
		for _, n := range grown {
			if p.Distance(n) <= killRadius {
				active[i] = false
				break
			}
		}
	}
	return true
}

// findLoopCandidate finds another vein within radius of pos that is
// neither an ancestor nor a descendant of vi, for Closed venation's loop
// merge. It queries hash (already populated with every vein's position
// this iteration) instead of scanning the whole vein list.
func findLoopCandidate(hash *SpatialHash2D, veins []VeinNode, vi int, pos geom.Vec2, radius float64) int {
	for _, j := range hash.QueryRadius(pos, radius) {
		if j == vi {
			continue
		}
		if isAncestor(veins, j, vi) || isAncestor(veins, vi, j) {
			continue
		}
		return j
	}
	return -1
}

// isAncestor reports whether candidate lies on of's path to the root.
func isAncestor(veins []VeinNode, candidate, of int) bool {
	cur := of
	for cur != -1 {
		if cur == candidate {
			return true
		}
		cur = veins[cur].Parent
	}
	return false
}

// computeWidths propagates pipe-model widths tip-to-root: a tip starts at
// raw width 1, an internal node's raw width is the sum of its children's,
// and the stored Width is √max(raw, 1).
func computeWidths(veins []VeinNode) {
	if len(veins) == 0 {
		return
	}
	raw := make([]float64, len(veins))
	var compute func(i int) float64
	compute = func(i int) float64 {
		if len(veins[i].Children) == 0 {
			raw[i] = 1
			return 1
		}
		sum := 0.0
		for _, c := range veins[i].Children {
			sum += compute(c)
		}
		raw[i] = sum
		return sum
	}
	compute(0)
	for i := range veins {
		veins[i].Width = math.Sqrt(math.Max(raw[i], 1))
	}
}
