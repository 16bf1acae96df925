package maskio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/silhouette/advanced"
)

// 3x2 image with alphas:
//
//	0   1   200
//	255 0   128
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	alphas := [][]uint8{{0, 1, 200}, {255, 0, 128}}
	for y, row := range alphas {
		for x, a := range row {
			img.SetNRGBA(10+x, 20+y, color.NRGBA{R: 255, A: a})
		}
	}
	return img
}

func TestOpaquePoints(t *testing.T) {
	points, w, h := OpaquePoints(testImage(), 1)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, []image.Point{{1, 0}, {2, 0}, {0, 1}, {2, 1}}, points)

	points, _, _ = OpaquePoints(testImage(), 150)
	assert.Equal(t, []image.Point{{2, 0}, {0, 1}}, points)
}

func TestGrid(t *testing.T) {
	mask := Grid(testImage(), 128)
	require.NoError(t, mask.Validate())
	assert.Equal(t, [][]bool{{false, false, true}, {true, false, true}}, mask.Opaque)

	t.Run("no alpha channel is fully opaque", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 2, 2))
		mask := Grid(gray, 255)
		assert.Equal(t, 4, mask.OpaqueCount())
	})
}

func TestDecode(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, testImage()))
		img, err := Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 3, img.Bounds().Dx())
		assert.Equal(t, 4, Grid(img, 1).OpaqueCount())
	})

	t.Run("jpeg has no alpha", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
		img, err := Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 6, Grid(img, 255).OpaqueCount())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode(strings.NewReader("not an image"))
		require.Error(t, err)
		assert.True(t, advanced.IsInputError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("does/not/exist.png")
		assert.True(t, advanced.IsInputError(err))
	})
}

func TestToGray(t *testing.T) {
	mask := advanced.NewPixelMask(2, 1)
	mask.Opaque[0][1] = true
	gray := ToGray(mask)
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y)
}
