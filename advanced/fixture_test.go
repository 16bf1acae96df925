package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/fogleman/gg"
)

// This file parses the svg fixtures and rasterizes them into masks. This is
// not a full (or even correct) svg parser. It finds whatever the first polygon
// is and fills it, black on transparent, at the svg's declared size. If
// anything goes wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) (Polygon, int, int) {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	width := parseFixtureInt(rootEl.Attributes["width"])
	height := parseFixtureInt(rootEl.Attributes["height"])

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	points := make([]Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, Point{x, y})
	}
	return Polygon{Points: points}, width, height
}

func parseFixtureInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid fixture dimension %q: %v", s, err)
	}
	return v
}

// LoadFixtureMask rasterizes the fixture's polygon. Pixels at least half
// covered are opaque.
func LoadFixtureMask(name string) PixelMask {
	poly, width, height := LoadFixture(name)
	dc := gg.NewContext(width, height)
	for _, p := range poly.Points {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetRGB(0, 0, 0)
	dc.Fill()

	img := dc.Image()
	mask := NewPixelMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			mask.Opaque[y][x] = a >= 0x8000
		}
	}
	return mask
}

// MaskFromRows builds a mask from rows of text, where 'X' is opaque and
// anything else is transparent.
func MaskFromRows(rows ...string) PixelMask {
	mask := NewPixelMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			mask.Opaque[y][x] = c == 'X'
		}
	}
	return mask
}
