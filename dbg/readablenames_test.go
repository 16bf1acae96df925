package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	type vertex struct{ X, Y int }

	t.Run("memoized per key", func(t *testing.T) {
		a := Name(vertex{1, 2})
		assert.NotEmpty(t, a)
		assert.Equal(t, a, Name(vertex{1, 2}))
	})

	t.Run("nil values", func(t *testing.T) {
		var p *vertex
		assert.Equal(t, "Ø", Name(nil))
		assert.Equal(t, "Ø", Name(p))
	})

	t.Run("non-comparable keys fall back to formatting", func(t *testing.T) {
		assert.Equal(t, "[1 2]", Name([]int{1, 2}))
	})
}
