// Convert raster silhouettes into 2D physics collision geometry.
//
// An image's opacity mask becomes either a convex hull with a bounded number
// of vertices, or a chain of thin oriented boxes lining a concave outline
// (several shapes and holes included). All coordinates in the results are in
// the collision target's frame: origin at the image center, y pointing up,
// outer boundaries counterclockwise.
//
// Every function here is a pure function of its arguments and is safe to call
// concurrently. The same input always produces bit-identical output.
package silhouette

import (
	"bytes"
	"image"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/osuushi/silhouette/advanced"
	"github.com/osuushi/silhouette/config"
	"github.com/osuushi/silhouette/maskio"
	"github.com/osuushi/silhouette/serialize"
)

type Point = advanced.Point
type Polygon = advanced.Polygon
type PixelMask = advanced.PixelMask
type OrientedBox = advanced.OrientedBox

// A mask needs at least this many opaque pixels to yield any shape
const minOpaquePixels = 3

// Replaced in tests to reach the empty-trace guard
var traceContours = advanced.TraceContours

// SetLogger enables logging for this package and the geometry core. Pass nil
// to silence it again.
func SetLogger(l *slog.Logger) {
	advanced.SetLogger(l)
}

// Deferred by every public entry point. The core panics on broken invariants;
// this turns those panics back into errors.
func recoverInto(err *error) {
	if recoveredErr := advanced.HandlePanicRecover(recover()); recoveredErr != nil {
		*err = recoveredErr
	}
}

// HullShape computes the convex collision hull of a mask, with at most
// maxVertices vertices.
func HullShape(mask PixelMask, maxVertices int) (Polygon, error) {
	if err := mask.Validate(); err != nil {
		return Polygon{}, err
	}
	return HullShapeFromPoints(advanced.MaskPoints(mask), mask.Width, mask.Height, maxVertices)
}

// HullShapeFromPoints is HullShape for callers that already have the list of
// opaque pixels of a width x height image.
func HullShapeFromPoints(points []image.Point, width, height, maxVertices int) (result Polygon, err error) {
	defer recoverInto(&err)

	if width <= 0 || height <= 0 {
		return Polygon{}, advanced.InputErrorf("image dimensions must be positive, got %dx%d", width, height)
	}
	bounds := image.Rect(0, 0, width, height)
	for _, p := range points {
		if !p.In(bounds) {
			return Polygon{}, advanced.InputErrorf("opaque pixel %v lies outside the %dx%d image", p, width, height)
		}
	}
	if len(points) < minOpaquePixels {
		return Polygon{}, advanced.InputErrorf("need at least %d opaque pixels, found %d", minOpaquePixels, len(points))
	}

	logger := advanced.Logger()
	boundary := advanced.BoundaryPixels(points, width, height)
	hull := advanced.ConvexHull(advanced.PixelCorners(boundary))
	if len(hull.Points) < 3 {
		return Polygon{}, advanced.GeometryErrorf("convex hull is degenerate (%d points)", len(hull.Points))
	}
	simplified := advanced.SimplifyByArea(hull, maxVertices)
	logger.Debug("built hull",
		slog.Int("opaque", len(points)),
		slog.Int("boundary", len(boundary)),
		slog.Int("hull", len(hull.Points)),
		slog.Int("simplified", len(simplified.Points)))

	return advanced.Normalize(simplified, width, height), nil
}

// TraceOutline traces every boundary of the mask (outer edges and holes) and
// simplifies each with tolerance epsilon. Contours are closed and stay in
// image coordinates.
func TraceOutline(mask PixelMask, epsilon float64) (contours []Polygon, err error) {
	defer recoverInto(&err)

	if err := mask.Validate(); err != nil {
		return nil, err
	}
	if count := mask.OpaqueCount(); count < minOpaquePixels {
		return nil, advanced.InputErrorf("need at least %d opaque pixels, found %d", minOpaquePixels, count)
	}
	if epsilon < 0 {
		return nil, advanced.InputErrorf("epsilon must not be negative, got %v", epsilon)
	}

	loops := traceContours(mask)
	// Any mask with an opaque pixel has at least one loop, so this only guards
	// against a tracer bug
	if len(loops) == 0 {
		return nil, advanced.GeometryErrorf("no closed contour found in %dx%d mask", mask.Width, mask.Height)
	}
	contours = make([]Polygon, len(loops))
	for i, loop := range loops {
		contours[i] = advanced.SimplifyClosed(loop, epsilon)
	}
	advanced.Logger().Debug("traced outline",
		slog.Int("contours", len(contours)),
		slog.Float64("epsilon", epsilon))
	return contours, nil
}

// BoxChain approximates the outline of a mask with oriented boxes, one per
// simplified edge, each 2*thickness thick and lying on the inside of its edge.
func BoxChain(mask PixelMask, epsilon, thickness float64) ([]OrientedBox, error) {
	contours, err := TraceOutline(mask, epsilon)
	if err != nil {
		return nil, err
	}
	return boxesFor(contours, thickness, mask.Width, mask.Height)
}

func boxesFor(contours []Polygon, thickness float64, width, height int) ([]OrientedBox, error) {
	if thickness <= 0 {
		return nil, advanced.InputErrorf("thickness must be positive, got %v", thickness)
	}
	boxes := advanced.BoxChainFromContours(contours, thickness, width, height)
	if len(boxes) == 0 {
		return nil, advanced.GeometryErrorf("outline produced no usable edges")
	}
	return boxes, nil
}

// Result of a full conversion. Only the fields of the selected mode are set.
type Result struct {
	Mode   Mode
	Width  int
	Height int

	// Hull mode
	Hull Polygon

	// Chain mode
	Mask     PixelMask
	Contours []Polygon
	Boxes    []OrientedBox

	// Encoded collision file
	Data []byte
}

// Convert runs the whole pipeline on a decoded image: threshold, geometry,
// encoding. Either everything succeeds or nothing is returned.
func Convert(img image.Image, mode Mode, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	b := img.Bounds()
	result := &Result{Mode: mode, Width: b.Dx(), Height: b.Dy()}
	var buf bytes.Buffer

	switch mode {
	case ModeHull:
		points, width, height := maskio.OpaquePoints(img, cfg.Threshold)
		hull, err := HullShapeFromPoints(points, width, height, cfg.MaxVertices)
		if err != nil {
			return nil, err
		}
		if err := serialize.WriteHull(&buf, hull); err != nil {
			return nil, err
		}
		result.Hull = hull

	case ModeChain:
		mask := maskio.Grid(img, cfg.Threshold)
		contours, err := TraceOutline(mask, cfg.Epsilon)
		if err != nil {
			return nil, err
		}
		boxes, err := boxesFor(contours, cfg.Thickness, mask.Width, mask.Height)
		if err != nil {
			return nil, err
		}
		body := serialize.Body{
			Friction:    cfg.Friction,
			Restitution: cfg.Restitution,
			Group:       cfg.Group,
			Masks:       cfg.Masks,
		}
		if err := serialize.WriteBoxChain(&buf, boxes, body); err != nil {
			return nil, err
		}
		result.Mask = mask
		result.Contours = contours
		result.Boxes = boxes

	default:
		return nil, errors.Errorf("unknown mode %d", mode)
	}

	result.Data = buf.Bytes()
	advanced.Logger().Info("converted silhouette",
		slog.String("mode", mode.String()),
		slog.Int("width", result.Width),
		slog.Int("height", result.Height),
		slog.Int("bytes", len(result.Data)))
	return result, nil
}
