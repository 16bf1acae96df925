package serialize

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/osuushi/silhouette/advanced"
)

// Body holds the rigid body properties written in the collision object
// header. The body is always static with zero mass.
type Body struct {
	Friction    float64
	Restitution float64
	Group       string
	Masks       []string
}

// Rotation components closer than this to their identity value are omitted.
const rotationEpsilon = 1e-7

// Each box stores its three half extents in the shared data array.
const boxDataCount = 3

// Line-oriented builder. Output is assembled in memory so a failed encode never
// leaves half a file in w.
type lineWriter struct {
	buf    bytes.Buffer
	indent int
}

func (lw *lineWriter) line(format string, args ...interface{}) {
	for i := 0; i < lw.indent; i++ {
		lw.buf.WriteString("  ")
	}
	fmt.Fprintf(&lw.buf, format, args...)
	lw.buf.WriteByte('\n')
}

func (lw *lineWriter) open(name string) {
	lw.line("%s {", name)
	lw.indent++
}

func (lw *lineWriter) close() {
	lw.indent--
	lw.line("}")
}

func (lw *lineWriter) float(name string, v float64) {
	lw.line("%s: %s", name, FormatFloat(v))
}

func (lw *lineWriter) flush(w io.Writer) error {
	_, err := w.Write(lw.buf.Bytes())
	return errors.Wrap(err, "writing collision data")
}

// WriteHull encodes a convex polygon as a hull shape: a shape type line, then
// one x, y, 0 triple per vertex in winding order.
func WriteHull(w io.Writer, poly advanced.Polygon) error {
	if len(poly.Points) < 3 {
		return errors.Errorf("hull needs at least 3 vertices, got %d", len(poly.Points))
	}
	var lw lineWriter
	lw.line("shape_type: TYPE_HULL")
	for _, p := range poly.Points {
		lw.float("data", p.X)
		lw.float("data", p.Y)
		lw.float("data", 0)
	}
	return lw.flush(w)
}

// WriteBoxChain encodes boxes as a static collision object. Every box becomes
// a shape block pointing at its half extents in the trailing data array.
// Position fields equal to zero and rotation fields at their identity value
// are left out, which the reader treats as defaults.
func WriteBoxChain(w io.Writer, boxes []advanced.OrientedBox, body Body) error {
	if len(boxes) == 0 {
		return errors.New("box chain is empty")
	}
	if len(body.Masks) == 0 {
		return errors.New("collision object needs at least one mask")
	}

	var lw lineWriter
	lw.line("type: COLLISION_OBJECT_TYPE_STATIC")
	lw.float("mass", 0)
	lw.float("friction", body.Friction)
	lw.float("restitution", body.Restitution)
	lw.line("group: %q", body.Group)
	for _, mask := range body.Masks {
		lw.line("mask: %q", mask)
	}

	lw.open("embedded_collision_shape")
	for i, box := range boxes {
		lw.open("shapes")
		lw.line("shape_type: TYPE_BOX")

		lw.open("position")
		if box.Position.X != 0 {
			lw.float("x", box.Position.X)
		}
		if box.Position.Y != 0 {
			lw.float("y", box.Position.Y)
		}
		lw.close()

		lw.open("rotation")
		if math.Abs(box.Rotation.Z) > rotationEpsilon {
			lw.float("z", box.Rotation.Z)
		}
		if math.Abs(box.Rotation.W-1) > rotationEpsilon {
			lw.float("w", box.Rotation.W)
		}
		lw.close()

		lw.line("index: %d", i*boxDataCount)
		lw.line("count: %d", boxDataCount)
		lw.close()
	}
	for _, box := range boxes {
		lw.float("data", box.HalfExtents.X)
		lw.float("data", box.HalfExtents.Y)
		lw.float("data", box.HalfExtents.Z)
	}
	lw.close()
	return lw.flush(w)
}
