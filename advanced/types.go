// Package advanced holds the geometry behind silhouette: hull building and
// simplification, contour tracing, and box chains. Most callers want the
// error-returning API in the parent package instead.
package advanced

// Points are plain values. Every stage of the pipeline builds a new slice of
// points from its input and never writes through to the caller's data, so the
// same mask can be fed through several stages (or twice through the same one)
// and give identical results.
type Point struct {
	X float64
	Y float64
}

// A Polygon is an ordered list of points. Depending on the stage it may be an
// open polyline, a convex ring without a closing duplicate, or a closed
// contour whose last point repeats its first.
type Polygon struct {
	Points []Point
}

// PixelMask is an opacity grid indexed [y][x]. It is owned by the caller and
// only read by this package.
type PixelMask struct {
	Width  int
	Height int
	Opaque [][]bool
}

// Quaternion holds a rotation confined to the XY plane, so X and Y are always
// zero.
type Quaternion struct {
	X, Y, Z, W float64
}

type Vec3 struct {
	X, Y, Z float64
}

// OrientedBox is a rectangle collision primitive in target (y-up, centered)
// coordinates.
type OrientedBox struct {
	Position    Point
	Rotation    Quaternion
	HalfExtents Vec3
}

type PointStack []Point
