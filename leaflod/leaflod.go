// Package leaflod reduces detailed leaf meshes to the cheaper representations
// used at distance: a single flat card, a billboard cloud of several cards,
// and the view directions for a pre-rendered octahedral impostor (spec §4.4).
package leaflod

import (
	"math"

	"github.com/Faultbox/midgard-ro/pkg/geom"
	"github.com/Faultbox/midgard-ro/pkg/mesh"
)

// Generator reduces leaf meshes to billboard-style LOD representations. It
// holds no state; every method is a pure function of its arguments.
type Generator struct{}

// GenerateCard collapses source down to a single axis-aligned quad spanning
// its XY bounding box, at the mid-Z of the source. Sources with fewer than 3
// vertices produce an empty mesh.
func (Generator) GenerateCard(source *mesh.Mesh) *mesh.Mesh {
	out := mesh.NewMesh()
	if len(source.Vertices) < 3 {
		return out
	}

	minX, maxX := source.Vertices[0].X, source.Vertices[0].X
	minY, maxY := source.Vertices[0].Y, source.Vertices[0].Y
	minZ, maxZ := source.Vertices[0].Z, source.Vertices[0].Z
	for _, v := range source.Vertices[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		minZ, maxZ = math.Min(minZ, v.Z), math.Max(maxZ, v.Z)
	}
	z := (minZ + maxZ) / 2

	v0 := out.AddVertex(geom.Vec3{X: minX, Y: minY, Z: z})
	v1 := out.AddVertex(geom.Vec3{X: maxX, Y: minY, Z: z})
	v2 := out.AddVertex(geom.Vec3{X: maxX, Y: maxY, Z: z})
	v3 := out.AddVertex(geom.Vec3{X: minX, Y: maxY, Z: z})

	uv0 := out.AddUV(geom.Vec2{X: 0, Y: 0})
	uv1 := out.AddUV(geom.Vec2{X: 1, Y: 0})
	uv2 := out.AddUV(geom.Vec2{X: 1, Y: 1})
	uv3 := out.AddUV(geom.Vec2{X: 0, Y: 1})

	out.AddTriangle(v0, v1, v2, uv0, uv1, uv2)
	out.AddTriangle(v0, v2, v3, uv0, uv2, uv3)
	return out
}

// GenerateBillboardCloud builds numPlanes quads, each rotated about the Y
// axis and centered on the positions' centroid, sized to the positions'
// bounding radius. It is the cheap many-angle stand-in for a full foliage
// cluster at mid distance. Empty for no positions or numPlanes < 1.
func (Generator) GenerateBillboardCloud(positions []geom.Vec3, numPlanes int) *mesh.Mesh {
	out := mesh.NewMesh()
	if len(positions) == 0 || numPlanes < 1 {
		return out
	}

	var center geom.Vec3
	for _, p := range positions {
		center = center.Add(p)
	}
	center = center.Scale(1 / float64(len(positions)))

	radius := 0.0
	for _, p := range positions {
		if d := p.Distance(center); d > radius {
			radius = d
		}
	}
	half := math.Max(radius, 0.5)

	up := geom.Vec3{X: 0, Y: 1, Z: 0}
	for i := 0; i < numPlanes; i++ {
		theta := math.Pi * float64(i) / float64(numPlanes)
		normal := geom.Vec3{X: math.Cos(theta), Y: 0, Z: math.Sin(theta)}

		tangent := up.Cross(normal)
		if tangent.Length() < 1e-6 {
			tangent = geom.Vec3{X: 1, Y: 0, Z: 0}
		} else {
			tangent = tangent.Normalize()
		}
		bitangent := normal.Cross(tangent).Normalize()

		t := tangent.Scale(half)
		b := bitangent.Scale(half)

		v0 := out.AddVertex(center.Sub(t).Sub(b))
		v1 := out.AddVertex(center.Add(t).Sub(b))
		v2 := out.AddVertex(center.Add(t).Add(b))
		v3 := out.AddVertex(center.Sub(t).Add(b))

		uv0 := out.AddUV(geom.Vec2{X: 0, Y: 0})
		uv1 := out.AddUV(geom.Vec2{X: 1, Y: 0})
		uv2 := out.AddUV(geom.Vec2{X: 1, Y: 1})
		uv3 := out.AddUV(geom.Vec2{X: 0, Y: 1})

		out.AddTriangle(v0, v1, v2, uv0, uv1, uv2)
		out.AddTriangle(v0, v2, v3, uv0, uv2, uv3)
	}
	return out
}

// GetImpostorViewDirections returns resolution*resolution unit view
// directions on the upper hemisphere, used to pre-render an octahedral
// impostor of a leaf. resolution <= 0 yields no directions.
func GetImpostorViewDirections(resolution int) []geom.Vec3 {
	if resolution <= 0 {
		return nil
	}
	dirs := make([]geom.Vec3, 0, resolution*resolution)
	for i := 0; i < resolution; i++ {
		theta := 2 * math.Pi * float64(i) / float64(resolution)
		for j := 0; j < resolution; j++ {
			phi := math.Pi / 2 * float64(j+1) / float64(resolution+1)
			dirs = append(dirs, geom.Vec3{
				X: math.Sin(phi) * math.Cos(theta),
				Y: math.Sin(phi) * math.Sin(theta),
				Z: math.Cos(phi),
			})
		}
	}
	return dirs
}
