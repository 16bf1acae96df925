package advanced

// Shoelace area. Positive for counterclockwise polygons in a y-up frame. A
// closing duplicate point contributes nothing, so this works for both open
// rings and closed contours.
func SignedArea(poly Polygon) float64 {
	n := len(poly.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, n)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func Area(poly Polygon) float64 {
	a := SignedArea(poly)
	if a < 0 {
		return -a
	}
	return a
}

func IsCCW(poly Polygon) bool {
	return SignedArea(poly) > 0
}

func IsCW(poly Polygon) bool {
	return SignedArea(poly) < 0
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{Points: make([]Point, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// IsClosed reports whether the last point repeats the first.
func (poly Polygon) IsClosed() bool {
	n := len(poly.Points)
	return n >= 2 && poly.Points[0] == poly.Points[n-1]
}

// Ring returns the points without the closing duplicate, if there is one.
func (poly Polygon) Ring() []Point {
	if poly.IsClosed() {
		return poly.Points[:len(poly.Points)-1]
	}
	return poly.Points
}

// UniqueCount counts distinct points.
func (poly Polygon) UniqueCount() int {
	seen := make(map[Point]struct{}, len(poly.Points))
	for _, p := range poly.Points {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// Even-odd point-in-polygon. Points lying on an edge count as inside, which is
// what the hull tests need, since hull vertices are input points.
func (poly Polygon) ContainsPoint(p Point) bool {
	ring := poly.Ring()
	n := len(ring)
	if n == 0 {
		return false
	}
	inside := false
	for i, a := range ring {
		b := ring[CircularIndex(i+1, n)]
		if onSegment(a, b, p) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p Point) bool {
	if !Equal(Cross(a, b, p), 0) {
		return false
	}
	return p.X >= minFloat64(a.X, b.X)-Tolerance && p.X <= maxFloat64(a.X, b.X)+Tolerance &&
		p.Y >= minFloat64(a.Y, b.Y)-Tolerance && p.Y <= maxFloat64(a.Y, b.Y)+Tolerance
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Validate checks that the grid really is Width x Height.
func (m PixelMask) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return inputErrorf("mask dimensions must be positive, got %dx%d", m.Width, m.Height)
	}
	if len(m.Opaque) != m.Height {
		return inputErrorf("mask has %d rows, expected %d", len(m.Opaque), m.Height)
	}
	for y, row := range m.Opaque {
		if len(row) != m.Width {
			return inputErrorf("mask row %d has %d cells, expected %d", y, len(row), m.Width)
		}
	}
	return nil
}

// At reports opacity, treating everything outside the grid as transparent.
func (m PixelMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Opaque[y][x]
}

// OpaqueCount counts opaque cells.
func (m PixelMask) OpaqueCount() int {
	count := 0
	for _, row := range m.Opaque {
		for _, opaque := range row {
			if opaque {
				count++
			}
		}
	}
	return count
}

// NewPixelMask allocates a fully transparent mask.
func NewPixelMask(width, height int) PixelMask {
	opaque := make([][]bool, height)
	for y := range opaque {
		opaque[y] = make([]bool, width)
	}
	return PixelMask{Width: width, Height: height, Opaque: opaque}
}
