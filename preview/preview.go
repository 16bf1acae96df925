// Package preview draws generated collision geometry for visual inspection.
// None of this is needed to produce collision files; it exists to debug them.
package preview

import (
	"image"
	"io"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/osuushi/silhouette/advanced"
)

// Padding around the image so shapes on the border stay visible
const drawPadding = 16

// Scene is what a preview shows. Hull and Boxes are in the target frame
// (centered, y up), Contours in image coordinates, exactly as the pipeline
// produces them. Any of them may be empty.
type Scene struct {
	Width, Height int
	Image         image.Image
	Hull          advanced.Polygon
	Contours      []advanced.Polygon
	Boxes         []advanced.OrientedBox
}

// RenderPNG draws the scene at the given scale and encodes it as PNG.
func RenderPNG(w io.Writer, scene Scene, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	width := int(scale*float64(scene.Width)) + drawPadding*2
	height := int(scale*float64(scene.Height)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0.1, 0.1, 0.1)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Image space: padding, then scale
	c.Push()
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	if scene.Image != nil {
		b := scene.Image.Bounds()
		c.DrawImage(scene.Image, -b.Min.X, -b.Min.Y)
	}
	c.SetLineWidth(1)
	for _, contour := range scene.Contours {
		tracePath(c, contour.Points)
		c.SetRGBA(1, 1, 0, 0.9)
		c.Stroke()
	}
	c.Pop()

	// Target space: origin at the image center, y flipped to point up
	c.Push()
	c.Translate(drawPadding+scale*float64(scene.Width)/2, drawPadding+scale*float64(scene.Height)/2)
	c.Scale(scale, -scale)
	c.SetLineWidth(1)
	if len(scene.Hull.Points) > 0 {
		tracePath(c, scene.Hull.Points)
		c.SetRGBA(0, 0.5, 0, 0.4)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}
	for _, box := range scene.Boxes {
		corners := box.Corners()
		tracePath(c, corners[:])
		c.SetRGBA(1, 0.3, 0.3, 0.4)
		c.FillPreserve()
		c.SetRGB(1, 0.3, 0.3)
		c.Stroke()
	}
	c.Pop()

	return errors.Wrap(c.EncodePNG(w), "encoding preview")
}

func tracePath(c *gg.Context, points []advanced.Point) {
	if len(points) == 0 {
		return
	}
	c.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
}

// Show prints a PNG file inline in the terminal (iTerm only).
func Show(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "preview not found")
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}
