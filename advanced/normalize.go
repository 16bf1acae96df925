package advanced

// ToTarget moves an image-space point (origin top left, y down) into the
// collision target's frame (origin at the image center, y up).
func ToTarget(p Point, width, height int) Point {
	cx, cy := float64(width)/2, float64(height)/2
	return Point{X: p.X - cx, Y: cy - p.Y}
}

// CenterContour maps every point of poly into the target frame. Flipping y
// mirrors the shape, so the sign of its signed area flips too; no reordering
// is done here.
func CenterContour(poly Polygon, width, height int) Polygon {
	points := make([]Point, len(poly.Points))
	for i, p := range poly.Points {
		points[i] = ToTarget(p, width, height)
	}
	return Polygon{Points: points}
}

// Normalize centers a hull on the image, flips it to y-up, and makes sure it
// winds counterclockwise in that frame. It must run after simplification,
// which assumes the winding it was given.
func Normalize(poly Polygon, width, height int) Polygon {
	centered := CenterContour(poly, width, height)
	if SignedArea(centered) < 0 {
		centered = centered.Reverse()
	}
	return centered
}
