package serialize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in       float64
		expected string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "0.0"},
		{3, "3.0"},
		{-2, "-2.0"},
		{100, "100.0"},
		{2.5, "2.5"},
		{-0.75, "-0.75"},
		{0.30000000000000004, "0.3"},
		{1.2345678, "1.234568"},
		{0.7071067811865476, "0.707107"},
		{1e-7, "0.0"},
		{-1e-7, "0.0"},
		{2.9999999, "3.0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, FormatFloat(c.in), "formatting %v", c.in)
	}
}
