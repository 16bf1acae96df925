package advanced

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyCircle(n int) Polygon {
	points := make([]Point, 0, n+1)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		r := 20 + 1.5*math.Sin(7*theta)
		points = append(points, Point{32 + r*math.Cos(theta), 32 + r*math.Sin(theta)})
	}
	return Polygon{Points: append(points, points[0])}
}

func TestSimplifyOpen(t *testing.T) {
	t.Run("drops points on the chord", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 1}}
		assert.Equal(t, []Point{{0, 0}, {2, 0}, {3, 1}}, SimplifyOpen(points, 0))
	})

	t.Run("keeps endpoints", func(t *testing.T) {
		points := []Point{{0, 0}, {1, 5}, {2, -5}, {3, 0}}
		assert.Equal(t, []Point{{0, 0}, {3, 0}}, SimplifyOpen(points, 100))
	})

	t.Run("short input", func(t *testing.T) {
		assert.Equal(t, []Point{{0, 0}, {1, 1}}, SimplifyOpen([]Point{{0, 0}, {1, 1}}, 1))
		assert.Empty(t, SimplifyOpen(nil, 1))
	})

	t.Run("long input does not recurse", func(t *testing.T) {
		points := make([]Point, 10000)
		for i := range points {
			points[i] = Point{float64(i), float64(i % 2)}
		}
		assert.Len(t, SimplifyOpen(points, 0.1), len(points))
	})
}

func TestPerpendicularDistance(t *testing.T) {
	assert.InDelta(t, 2, PerpendicularDistance(Point{1, 2}, Point{0, 0}, Point{5, 0}), Tolerance)
	// Beyond the segment it is measured to the nearest endpoint
	assert.InDelta(t, math.Hypot(4, 2), PerpendicularDistance(Point{9, -2}, Point{0, 0}, Point{5, 0}), Tolerance)
	assert.InDelta(t, 3, PerpendicularDistance(Point{-3, 0}, Point{0, 0}, Point{5, 0}), Tolerance)
	// Degenerate chord
	assert.InDelta(t, 5, PerpendicularDistance(Point{3, 4}, Point{0, 0}, Point{0, 0}), Tolerance)
}

func TestSimplifyClosed(t *testing.T) {
	t.Run("rectangle keeps its corners", func(t *testing.T) {
		rect := Polygon{Points: []Point{{0, 0}, {0, 10}, {20, 10}, {20, 0}, {0, 0}}}
		assert.Equal(t, rect.Points, SimplifyClosed(rect, 2).Points)
	})

	t.Run("open input is closed first", func(t *testing.T) {
		rect := Polygon{Points: []Point{{0, 0}, {0, 10}, {20, 10}, {20, 0}}}
		assert.Equal(t,
			[]Point{{0, 0}, {0, 10}, {20, 10}, {20, 0}, {0, 0}},
			SimplifyClosed(rect, 2).Points)
	})

	t.Run("zero epsilon keeps every corner", func(t *testing.T) {
		loops := TraceContours(MaskFromRows(
			"X.",
			"XX",
		))
		require.Len(t, loops, 1)
		assert.Equal(t, loops[0].Points, SimplifyClosed(loops[0], 0).Points)
	})

	t.Run("collapse falls back to the first three points", func(t *testing.T) {
		small := Polygon{Points: []Point{{0, 0}, {0, 2}, {3, 2}, {3, 0}, {0, 0}}}
		assert.Equal(t,
			[]Point{{0, 0}, {0, 2}, {3, 2}, {0, 0}},
			SimplifyClosed(small, 2).Points)
	})

	t.Run("spike beyond the chord survives", func(t *testing.T) {
		// The tip sits on the extension of the chord (0,0)-(5,0), but far
		// past its end
		spike := Polygon{Points: []Point{{0, 0}, {0, 1}, {10, 0.5}, {5, 0}, {5, -5}, {0, -5}, {0, 0}}}
		assert.Equal(t,
			[]Point{{0, 0}, {10, 0.5}, {5, 0}, {5, -5}, {0, -5}, {0, 0}},
			SimplifyClosed(spike, 2).Points)
	})

	t.Run("tiny input is returned as is", func(t *testing.T) {
		tiny := Polygon{Points: []Point{{0, 0}, {1, 0}, {0, 0}}}
		assert.Equal(t, tiny.Points, SimplifyClosed(tiny, 1).Points)
	})

	t.Run("removed points stay within epsilon of each half", func(t *testing.T) {
		const epsilon = 1.0
		contour := noisyCircle(60)
		result := SimplifyClosed(contour, epsilon)
		require.True(t, result.IsClosed())
		require.Less(t, len(result.Points), len(contour.Points))
		require.GreaterOrEqual(t, result.UniqueCount(), 3)

		// The result is a subsequence of the input
		points := contour.Points
		n := len(points)
		kept := make([]bool, n)
		j := 0
		for i, p := range points {
			if j < len(result.Points) && p == result.Points[j] {
				kept[i] = true
				j++
			}
		}
		require.Equal(t, len(result.Points), j)

		mid := n / 2
		assert.True(t, kept[0])
		assert.True(t, kept[mid])
		assert.True(t, kept[n-1])
		for _, half := range [][2]int{{0, mid}, {mid, n - 1}} {
			prev := half[0]
			for i := half[0] + 1; i <= half[1]; i++ {
				if !kept[i] {
					continue
				}
				for k := prev + 1; k < i; k++ {
					d := PerpendicularDistance(points[k], points[prev], points[i])
					assert.LessOrEqual(t, d, epsilon, "point %d", k)
				}
				prev = i
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		contour := noisyCircle(90)
		assert.Equal(t, SimplifyClosed(contour, 0.5), SimplifyClosed(contour, 0.5))
	})
}
