package advanced

import "sort"

// ConvexHull builds the convex hull with Andrew's monotone chain. The result
// is counterclockwise in a y-up reading of the input coordinates, has no
// closing duplicate, and contains no collinear vertices.
//
// With two or fewer distinct points there is no hull to speak of, and the
// distinct points are returned as they are. Callers must reject those.
func ConvexHull(points []Point) Polygon {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	// Exact duplicates are adjacent after sorting
	unique := sorted[:0]
	for i, p := range sorted {
		if i > 0 && p == sorted[i-1] {
			continue
		}
		unique = append(unique, p)
	}
	if len(unique) <= 2 {
		return Polygon{Points: append([]Point(nil), unique...)}
	}

	lower := make(PointStack, 0, len(unique))
	for _, p := range unique {
		lower.pushConvex(p)
	}
	upper := make(PointStack, 0, len(unique))
	for i := len(unique) - 1; i >= 0; i-- {
		upper.pushConvex(unique[i])
	}

	// The last point of each chain is the first point of the other
	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return Polygon{Points: hull}
}

// Pop points off the chain until the last two points and p make a strict left
// turn, then push p.
func (s *PointStack) pushConvex(p Point) {
	/*
		  a----b
		        \
		         p      a -> b -> p turns right (y-up), so b is dropped
	*/
	for s.Len() >= 2 && Cross(s.Peek(2), s.Peek(1), p) <= 0 {
		s.Pop()
	}
	s.Push(p)
}
