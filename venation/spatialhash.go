// Package venation implements the leaf venation engine (spec §4.3):
// rejection-sampled auxin sources, a Runions-style space-colonization
// growth loop over a uniform spatial hash, pipe-model width propagation,
// and the per-vertex vein-distance mesh attribute.
package venation

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ro/internal/obslog"
	"github.com/Faultbox/midgard-ro/pkg/geom"
)

type hashEntry struct {
	id  int
	pos geom.Vec2
}

// SpatialHash2D is a short-lived uniform grid over 2D points, sized to
// answer "nearest point within radius" queries cheaply (spec §4.3,
// §9's "vector of vector-of-entry per cell" note).
type SpatialHash2D struct {
	cellSize float64
	cells    map[[2]int][]hashEntry
}

// NewSpatialHash2D creates a grid with the given cell size.
func NewSpatialHash2D(cellSize float64) *SpatialHash2D {
	if cellSize <= 0 {
		obslog.Warn("venation: clamping spatial hash cell size", zap.Float64("value", cellSize), zap.Float64("clamped_to", 1))
		cellSize = 1
	}
	return &SpatialHash2D{cellSize: cellSize, cells: make(map[[2]int][]hashEntry)}
}

func (h *SpatialHash2D) cellOf(p geom.Vec2) [2]int {
	return [2]int{int(math.Floor(p.X / h.cellSize)), int(math.Floor(p.Y / h.cellSize))}
}

// Insert records an entry at pos under the given id.
func (h *SpatialHash2D) Insert(id int, pos geom.Vec2) {
	c := h.cellOf(pos)
	h.cells[c] = append(h.cells[c], hashEntry{id: id, pos: pos})
}

// Nearest scans every cell overlapping the disc of radius around pos and
// returns the id of the closest entry within radius, or -1 if none.
func (h *SpatialHash2D) Nearest(pos geom.Vec2, radius float64) int {
	cell := h.cellOf(pos)
	span := int(math.Ceil(radius / h.cellSize))
	best := -1
	bestDistSq := radius * radius

	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			for _, e := range h.cells[[2]int{cell[0] + dx, cell[1] + dy}] {
				d := e.pos.DistanceSq(pos)
				if d <= bestDistSq {
					bestDistSq = d
					best = e.id
				}
			}
		}
	}
	return best
}

// QueryRadius returns every inserted id within radius of pos.
func (h *SpatialHash2D) QueryRadius(pos geom.Vec2, radius float64) []int {
	cell := h.cellOf(pos)
	span := int(math.Ceil(radius / h.cellSize))
	radiusSq := radius * radius
	var out []int

	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			for _, e := range h.cells[[2]int{cell[0] + dx, cell[1] + dy}] {
				if e.pos.DistanceSq(pos) <= radiusSq {
					out = append(out, e.id)
				}
			}
		}
	}
	return out
}
