package advanced

import "math"

// SimplifyByArea applies Visvalingam–Whyatt to a ring until it has at most
// maxVertices points. Each round removes the vertex whose triangle with its
// current neighbours has the smallest area; the first such vertex wins ties.
//
// The input must be convex. Removing any single vertex of a convex polygon
// leaves a convex polygon with no more area than before, so nothing needs to
// be repaired between rounds. Winding order is preserved.
func SimplifyByArea(poly Polygon, maxVertices int) Polygon {
	if maxVertices < 3 {
		maxVertices = 3
	}
	ring := append([]Point(nil), poly.Ring()...)

	for len(ring) > maxVertices {
		n := len(ring)
		minIndex := 0
		minArea := math.Inf(1)
		for i := range ring {
			prev := ring[CircularIndex(i-1, n)]
			next := ring[CircularIndex(i+1, n)]
			area := math.Abs(Cross(prev, ring[i], next)) / 2
			if area < minArea {
				minArea = area
				minIndex = i
			}
		}
		ring = append(ring[:minIndex], ring[minIndex+1:]...)
	}
	return Polygon{Points: ring}
}
