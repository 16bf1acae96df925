package advanced

import (
	"log/slog"
	"math"
)

// BoxDepth is the half extent of every box along z. The simulation is 2D, so it
// only has to be large enough never to matter.
const BoxDepth = 10.0

// BoxChainFromContours lines every edge of every contour with one oriented box.
// Contours are closed polygons in image space, wound the way TraceContours
// produces them (opaque side on the left of each edge when looking at the
// image). Each box is 2*thickness wide and sits entirely on the opaque side of
// its edge, with one long side on the edge itself.
//
// Zero-length edges are skipped. Boxes come out in edge traversal order,
// contour by contour, already in the target frame.
func BoxChainFromContours(contours []Polygon, thickness float64, width, height int) []OrientedBox {
	var boxes []OrientedBox
	for _, contour := range contours {
		points := contour.Points
		for i := 0; i+1 < len(points); i++ {
			box, ok := edgeBox(points[i], points[i+1], thickness, width, height)
			if !ok {
				Logger().Debug("skipping degenerate edge",
					slog.Float64("x", points[i].X), slog.Float64("y", points[i].Y))
				continue
			}
			boxes = append(boxes, box)
		}
	}
	return boxes
}

func edgeBox(a, b Point, thickness float64, width, height int) (OrientedBox, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < Tolerance {
		return OrientedBox{}, false
	}
	ux, uy := dx/length, dy/length
	// Left of the edge as seen on the image, which is the opaque side
	nx, ny := uy, -ux

	center := Point{
		X: (a.X+b.X)/2 + nx*thickness,
		Y: (a.Y+b.Y)/2 + ny*thickness,
	}

	// Negated because the y flip into the target frame mirrors every angle
	angle := -math.Atan2(dy, dx)
	return OrientedBox{
		Position: ToTarget(center, width, height),
		Rotation: Quaternion{
			Z: math.Sin(angle / 2),
			W: math.Cos(angle / 2),
		},
		HalfExtents: Vec3{X: length / 2, Y: thickness, Z: BoxDepth},
	}, true
}

// Angle returns the box's rotation about z, in radians.
func (b OrientedBox) Angle() float64 {
	return 2 * math.Atan2(b.Rotation.Z, b.Rotation.W)
}

// Corners returns the box's four corners in the xy plane, counterclockwise.
func (b OrientedBox) Corners() [4]Point {
	angle := b.Angle()
	cos, sin := math.Cos(angle), math.Sin(angle)
	hx, hy := b.HalfExtents.X, b.HalfExtents.Y
	corner := func(sx, sy float64) Point {
		return Point{
			X: b.Position.X + sx*hx*cos - sy*hy*sin,
			Y: b.Position.Y + sx*hx*sin + sy*hy*cos,
		}
	}
	return [4]Point{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
}
