// Package mesh provides the Mesh container shared by every generator in
// this module: vertices, UVs, polygons encoded as degenerate quads, and a
// heterogeneous per-vertex attribute store.
package mesh

import "github.com/Faultbox/midgard-ro/pkg/geom"

// Polygon is a 4-tuple of vertex indices. Triangles are represented as
// degenerate quads: the 3rd and 4th indices are equal.
type Polygon [4]int

// IsTriangle reports whether p is a triangle encoded as a degenerate quad.
func (p Polygon) IsTriangle() bool {
	return p[2] == p[3]
}

// Triangle returns the three distinct vertex indices of a triangle-encoded
// polygon.
func (p Polygon) Triangle() (a, b, c int) {
	return p[0], p[1], p[2]
}

// NewTrianglePolygon builds a degenerate-quad polygon from three indices.
func NewTrianglePolygon(a, b, c int) Polygon {
	return Polygon{a, b, c, c}
}

// Mesh is the output container produced by every generator: tree mesher,
// leaf shape generator, and LOD reducers.
type Mesh struct {
	Vertices   []geom.Vec3
	UVs        []geom.Vec2
	Polygons   []Polygon
	UVLoops    []Polygon
	Attributes Attributes
}

// NewMesh returns an empty mesh with an initialized attribute store.
func NewMesh() *Mesh {
	return &Mesh{Attributes: make(Attributes)}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v geom.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddUV appends a UV coordinate and returns its index.
func (m *Mesh) AddUV(uv geom.Vec2) int {
	m.UVs = append(m.UVs, uv)
	return len(m.UVs) - 1
}

// AddTriangle appends a triangle (as a degenerate quad) together with its
// parallel UV loop.
func (m *Mesh) AddTriangle(a, b, c int, uvA, uvB, uvC int) {
	m.Polygons = append(m.Polygons, NewTrianglePolygon(a, b, c))
	m.UVLoops = append(m.UVLoops, NewTrianglePolygon(uvA, uvB, uvC))
}

// AddQuad appends a quad polygon together with its parallel UV loop.
func (m *Mesh) AddQuad(a, b, c, d int, uvA, uvB, uvC, uvD int) {
	m.Polygons = append(m.Polygons, Polygon{a, b, c, d})
	m.UVLoops = append(m.UVLoops, Polygon{uvA, uvB, uvC, uvD})
}

// Validate checks the invariants from spec §3: index ranges, UV-loop
// parity, triangle encoding, and attribute-array length. It returns the
// first violation found, or nil.
func (m *Mesh) Validate() error {
	if len(m.UVLoops) != len(m.Polygons) {
		return errMismatch("uv_loops length %d != polygons length %d", len(m.UVLoops), len(m.Polygons))
	}
	for i, p := range m.Polygons {
		for _, idx := range p {
			if idx < 0 || idx >= len(m.Vertices) {
				return errMismatch("polygon %d references out-of-range vertex index %d", i, idx)
			}
		}
		if p.IsTriangle() && (p[0] == p[1] || p[0] == p[2] || p[1] == p[2]) {
			return errMismatch("triangle polygon %d repeats a vertex index: %v", i, p)
		}
	}
	for i, uv := range m.UVLoops {
		for _, idx := range uv {
			if idx < 0 || idx >= len(m.UVs) {
				return errMismatch("uv_loop %d references out-of-range uv index %d", i, idx)
			}
		}
	}
	for name, arr := range m.Attributes {
		if n := arr.Len(); n != len(m.Vertices) {
			return errMismatch("attribute %q has %d entries, want %d", name, n, len(m.Vertices))
		}
	}
	return nil
}
