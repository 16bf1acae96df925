package preview

import (
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/gotranspile/gotrace"
	"github.com/pkg/errors"

	"github.com/osuushi/silhouette/advanced"
	"github.com/osuushi/silhouette/maskio"
	"github.com/osuushi/silhouette/serialize"
)

// WriteSVG draws the scene as an SVG in image coordinates, one unit per
// pixel. The source image itself is not embedded.
func WriteSVG(w io.Writer, scene Scene) error {
	canvas := svg.New(w)
	canvas.Start(scene.Width, scene.Height)
	canvas.Rect(0, 0, scene.Width, scene.Height, "fill:#1a1a1a")

	for _, contour := range scene.Contours {
		canvas.Path(pathData(contour.Points), "fill:none;stroke:#ffff00;stroke-width:0.5")
	}
	if len(scene.Hull.Points) > 0 {
		canvas.Path(pathData(toImage(scene.Hull.Points, scene)), "fill:#00800066;stroke:#00ffff;stroke-width:0.5")
	}
	for _, box := range scene.Boxes {
		corners := box.Corners()
		canvas.Path(pathData(toImage(corners[:], scene)), "fill:#ff4d4d66;stroke:#ff4d4d;stroke-width:0.25")
	}
	canvas.End()
	return nil
}

// Undo the target-frame transform so shapes line up with the image
func toImage(points []advanced.Point, scene Scene) []advanced.Point {
	cx, cy := float64(scene.Width)/2, float64(scene.Height)/2
	out := make([]advanced.Point, len(points))
	for i, p := range points {
		out[i] = advanced.Point{X: p.X + cx, Y: cy - p.Y}
	}
	return out
}

func pathData(points []advanced.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(serialize.FormatFloat(p.X))
		b.WriteString(" ")
		b.WriteString(serialize.FormatFloat(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// OutlineSVG traces the mask with potrace and writes the smooth outline as
// SVG. Handy for comparing the box chain against a curve-fitted outline of
// the same silhouette.
func OutlineSVG(w io.Writer, mask advanced.PixelMask) error {
	if err := mask.Validate(); err != nil {
		return err
	}
	bm := gotrace.BitmapFromGray(maskio.ToGray(mask), nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return errors.Wrap(err, "tracing outline")
	}
	return errors.Wrap(gotrace.Render("svg", nil, w, paths, mask.Width, mask.Height), "rendering outline")
}
