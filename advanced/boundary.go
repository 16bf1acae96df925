package advanced

import "image"

// BoundaryPixels keeps only the opaque pixels that have at least one
// 4-connected neighbour which is transparent or off the grid. A pixel that is
// surrounded on all four sides lies inside the hull of its neighbours and can
// never be an extreme point, so dropping it leaves the convex hull unchanged
// while shrinking the hull builder's input to the silhouette's perimeter.
//
// Input order is preserved. Duplicate input pixels are kept as-is.
func BoundaryPixels(points []image.Point, width, height int) []image.Point {
	opaque := make(map[image.Point]struct{}, len(points))
	for _, p := range points {
		opaque[p] = struct{}{}
	}
	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		_, ok := opaque[image.Point{X: x, Y: y}]
		return ok
	}

	var boundary []image.Point
	for _, p := range points {
		if !isOpaque(p.X-1, p.Y) || !isOpaque(p.X+1, p.Y) ||
			!isOpaque(p.X, p.Y-1) || !isOpaque(p.X, p.Y+1) {
			boundary = append(boundary, p)
		}
	}
	return boundary
}

// MaskPoints lists the opaque pixels of a mask in row-major order.
func MaskPoints(mask PixelMask) []image.Point {
	var points []image.Point
	for y, row := range mask.Opaque {
		for x, opaque := range row {
			if opaque {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	return points
}

// PixelCorners turns pixels into the lattice points at their four corners.
// Pixel (x, y) covers the unit square [x, x+1] x [y, y+1], so a hull built on
// corners encloses the whole silhouette rather than just the pixel origins.
func PixelCorners(pixels []image.Point) []Point {
	corners := make([]Point, 0, len(pixels)*4)
	for _, p := range pixels {
		x, y := float64(p.X), float64(p.Y)
		corners = append(corners,
			Point{X: x, Y: y},
			Point{X: x + 1, Y: y},
			Point{X: x + 1, Y: y + 1},
			Point{X: x, Y: y + 1},
		)
	}
	return corners
}
