package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, float32(0), SquaredL2([]float32{1, 2, 3}, []float32{1, 2, 3}))
	assert.Equal(t, float32(3), SquaredL2([]float32{0, 0, 0}, []float32{1, 1, 1}))
	assert.Equal(t, float32(25), SquaredL2([]float32{0, 3}, []float32{4, 0}))
}

func TestL1(t *testing.T) {
	assert.Equal(t, float32(0), L1([]float32{1, 2}, []float32{1, 2}))
	assert.Equal(t, float32(7), L1([]float32{0, 3}, []float32{4, 0}))
	assert.Equal(t, float32(2), L1([]float32{-1, 0}, []float32{1, 0}))
}

func TestAxisGap(t *testing.T) {
	t.Run("below interval", func(t *testing.T) {
		assert.Equal(t, float32(2), AxisGap(-1, 1, 5))
	})

	t.Run("inside interval", func(t *testing.T) {
		assert.Equal(t, float32(0), AxisGap(3, 1, 5))
		assert.Equal(t, float32(0), AxisGap(1, 1, 5))
		assert.Equal(t, float32(0), AxisGap(5, 1, 5))
	})

	t.Run("above interval", func(t *testing.T) {
		assert.Equal(t, float32(3), AxisGap(8, 1, 5))
	})
}

func TestSqrt(t *testing.T) {
	assert.Equal(t, float32(3), Sqrt(9))
	assert.Equal(t, float32(0), Sqrt(0))
}
