package leafshape

import "github.com/Faultbox/midgard-ro/pkg/geom"

// Triangulate ear-clips a simple polygon given in point order, forcing CCW
// winding first via signed area (spec §4.2 step 3). Triangles are
// returned as index triples into points, except where the fallback
// centroid-fan path is used: those triangles may reference indices ≥
// len(points), resolved against the extra points this function also
// returns (new vertices — the fan's centroid — that the caller must add
// to its mesh).
func Triangulate(points []geom.Vec2) (extra []geom.Vec2, triangles [][3]int) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if signedArea(points, indices) < 0 {
		for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	for len(indices) > 3 {
		ear := findEar(points, indices)
		if ear < 0 {
			baseExtra := n + len(extra)
			fanTris, fanExtra := centroidFan(points, indices, baseExtra)
			triangles = append(triangles, fanTris...)
			extra = append(extra, fanExtra...)
			return extra, triangles
		}
		ln := len(indices)
		a := indices[(ear-1+ln)%ln]
		b := indices[ear]
		c := indices[(ear+1)%ln]
		triangles = append(triangles, [3]int{a, b, c})
		indices = append(indices[:ear], indices[ear+1:]...)
	}
	if len(indices) == 3 {
		triangles = append(triangles, [3]int{indices[0], indices[1], indices[2]})
	}
	return extra, triangles
}

// findEar returns the position within indices of a convex vertex whose
// triangle contains no other remaining vertex, or -1 if none qualifies.
func findEar(points []geom.Vec2, indices []int) int {
	n := len(indices)
	for i := 0; i < n; i++ {
		a := indices[(i-1+n)%n]
		b := indices[i]
		c := indices[(i+1)%n]
		if !isConvex(points[a], points[b], points[c]) {
			continue
		}
		inside := false
		for _, idx := range indices {
			if idx == a || idx == b || idx == c {
				continue
			}
			if pointInTriangle(points[idx], points[a], points[b], points[c]) {
				inside = true
				break
			}
		}
		if !inside {
			return i
		}
	}
	return -1
}

// centroidFan triangulates the remaining ring as a fan around its
// centroid, a new vertex placed at centroidIdx.
func centroidFan(points []geom.Vec2, indices []int, centroidIdx int) ([][3]int, []geom.Vec2) {
	var sum geom.Vec2
	for _, idx := range indices {
		sum = sum.Add(points[idx])
	}
	centroid := sum.Scale(1 / float64(len(indices)))

	n := len(indices)
	tris := make([][3]int, n)
	for i := 0; i < n; i++ {
		a := indices[i]
		b := indices[(i+1)%n]
		tris[i] = [3]int{a, b, centroidIdx}
	}
	return tris, []geom.Vec2{centroid}
}

func signedArea(points []geom.Vec2, indices []int) float64 {
	area := 0.0
	n := len(indices)
	for i := 0; i < n; i++ {
		a := points[indices[i]]
		b := points[indices[(i+1)%n]]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func isConvex(a, b, c geom.Vec2) bool {
	return b.Sub(a).Cross(c.Sub(b)) > 0
}

func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
