package advanced

import "math"

// Index range [first, last] of a polyline still waiting to be examined.
type span struct {
	first, last int
}

// SimplifyOpen runs Ramer–Douglas–Peucker over an open polyline. Both
// endpoints are always kept. A point survives when it is farther than epsilon
// from the chord segment of the span it was examined in. Spans are processed from an
// explicit stack rather than by recursion, so long outlines cannot blow the
// call stack.
func SimplifyOpen(points []Point, epsilon float64) []Point {
	n := len(points)
	if n <= 2 {
		return append([]Point(nil), points...)
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.last-s.first < 2 {
			continue
		}

		maxDistance := -1.0
		maxIndex := s.first
		for i := s.first + 1; i < s.last; i++ {
			d := PerpendicularDistance(points[i], points[s.first], points[s.last])
			if d > maxDistance {
				maxDistance = d
				maxIndex = i
			}
		}
		if maxDistance > epsilon {
			keep[maxIndex] = true
			// Push the right half first so the left half is examined first
			stack = append(stack, span{maxIndex, s.last}, span{s.first, maxIndex})
		}
	}

	result := make([]Point, 0, n)
	for i, p := range points {
		if keep[i] {
			result = append(result, p)
		}
	}
	return result
}

// PerpendicularDistance is the distance from p to the segment a-b. The
// projection is clamped to the segment, so a point beyond either end is
// measured to that endpoint. A degenerate chord measures to a.
func PerpendicularDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lengthSq := ab.X*ab.X + ab.Y*ab.Y
	if lengthSq < Tolerance*Tolerance {
		return p.Sub(a).Length()
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lengthSq
	t = math.Max(0, math.Min(1, t))
	nearest := Point{X: a.X + t*ab.X, Y: a.Y + t*ab.Y}
	return p.Sub(nearest).Length()
}

// SimplifyClosed simplifies a closed contour (last point repeats the first).
//
// Plain RDP needs two fixed endpoints, which a ring does not have. The ring is
// cut at its middle index into two open halves that share the start point and
// the middle point as junctions, each half is simplified on its own, and the
// halves are joined again. Both junctions always survive, so the result
// depends on where the ring starts; for a fixed vertex order it is fully
// deterministic.
//
// If fewer than three distinct vertices survive, the first three input points
// are used instead.
func SimplifyClosed(contour Polygon, epsilon float64) Polygon {
	points := contour.Points
	if !contour.IsClosed() && len(points) > 0 {
		points = append(append([]Point(nil), points...), points[0])
	}
	n := len(points)
	if n < 4 {
		return Polygon{Points: append([]Point(nil), points...)}
	}

	mid := n / 2
	first := SimplifyOpen(points[:mid+1], epsilon)
	second := SimplifyOpen(points[mid:], epsilon)

	merged := make([]Point, 0, len(first)+len(second))
	merged = append(merged, first...)
	// second starts with the middle junction, which first already ends with
	merged = append(merged, second[1:]...)
	if merged[len(merged)-1] != merged[0] {
		merged = append(merged, merged[0])
	}

	result := Polygon{Points: merged}
	if result.UniqueCount() < 3 {
		Logger().Warn("simplified contour collapsed, keeping first three points",
			"input", n-1, "epsilon", epsilon)
		result = Polygon{Points: []Point{points[0], points[1], points[2], points[0]}}
	}
	return result
}
