// Package maskio turns decoded images into opacity masks for the geometry
// core. It knows nothing about geometry; it only decodes and thresholds.
package maskio

import (
	"image"
	"image/color"
	"io"
	"os"

	// Registered image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/osuushi/silhouette/advanced"
)

// Decode reads any registered image format. Failures are InputErrors.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, advanced.WrapInput(err, "decoding image")
	}
	return img, nil
}

func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, advanced.WrapInput(err, "opening image")
	}
	defer f.Close()
	return Decode(f)
}

// Alpha of the pixel at (x, y) relative to the image bounds, 0-255. Formats
// without an alpha channel report fully opaque pixels.
func alphaAt(img image.Image, x, y int) int {
	b := img.Bounds()
	_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return int(a >> 8)
}

// OpaquePoints lists the pixels whose alpha is at least threshold, in
// row-major order, with coordinates relative to the image's top left corner.
func OpaquePoints(img image.Image, threshold int) (points []image.Point, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if alphaAt(img, x, y) >= threshold {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	return points, width, height
}

// Grid builds the full opacity grid of img.
func Grid(img image.Image, threshold int) advanced.PixelMask {
	b := img.Bounds()
	mask := advanced.NewPixelMask(b.Dx(), b.Dy())
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			mask.Opaque[y][x] = alphaAt(img, x, y) >= threshold
		}
	}
	return mask
}

// ToGray renders a mask as a grayscale bitmap, black where opaque and white
// elsewhere, which is what bitmap tracers expect.
func ToGray(mask advanced.PixelMask) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Opaque[y][x] {
				gray.SetGray(x, y, color.Gray{Y: 0})
			} else {
				gray.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return gray
}
