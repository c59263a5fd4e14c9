package venation

import "github.com/Faultbox/midgard-ro/pkg/geom"

// polygonArea returns the signed shoelace area of a closed contour.
func polygonArea(contour []geom.Vec2) float64 {
	area := 0.0
	n := len(contour)
	for i := 0; i < n; i++ {
		a := contour[i]
		b := contour[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// pointInPolygon is an even-odd ray-casting point-in-polygon test.
func pointInPolygon(p geom.Vec2, contour []geom.Vec2) bool {
	inside := false
	n := len(contour)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := contour[i], contour[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xIntersect := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func boundingBox(contour []geom.Vec2) (minX, maxX, minY, maxY float64) {
	minX, maxX = contour[0].X, contour[0].X
	minY, maxY = contour[0].Y, contour[0].Y
	for _, p := range contour {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

func polygonCentroid(contour []geom.Vec2) geom.Vec2 {
	var sum geom.Vec2
	for _, p := range contour {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(contour)))
}

// nearestContourPoint returns the closest point lying on the polygon's
// boundary (not just its vertices) to p.
func nearestContourPoint(p geom.Vec2, contour []geom.Vec2) geom.Vec2 {
	n := len(contour)
	best := contour[0]
	bestDistSq := p.DistanceSq(best)
	for i := 0; i < n; i++ {
		proj := pointSegmentProjection(p, contour[i], contour[(i+1)%n])
		if d := p.DistanceSq(proj); d < bestDistSq {
			bestDistSq = d
			best = proj
		}
	}
	return best
}

func pointSegmentProjection(p, a, b geom.Vec2) geom.Vec2 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 < 1e-12 {
		return a
	}
	t := geom.Clamp01(p.Sub(a).Dot(ab) / l2)
	return a.Add(ab.Scale(t))
}

func pointSegmentDistance(p, a, b geom.Vec2) float64 {
	return p.Distance(pointSegmentProjection(p, a, b))
}
