// Package serialize encodes collision geometry into the Defold text formats:
// a convex hull shape file, or a static collision object embedding one box
// per outline edge.
package serialize

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders whole numbers as "<int>.0" and everything else with at
// most six decimals, trailing zeros removed but at least one digit kept after
// the point. Negative zero prints as "0.0".
func FormatFloat(v float64) string {
	if v == 0 {
		return "0.0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64) + ".0"
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
