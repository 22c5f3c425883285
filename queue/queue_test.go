package queue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKNNResultSet(t *testing.T) {
	t.Run("fills to capacity in sorted order", func(t *testing.T) {
		rs := NewKNNResultSet(3)

		assert.True(t, rs.Insert(0, 5))
		assert.True(t, rs.Insert(1, 1))
		assert.True(t, rs.Insert(2, 3))

		require.Equal(t, 3, rs.Len())
		assert.True(t, rs.Full())
		assert.Equal(t, []Item{{1, 1}, {2, 3}, {0, 5}}, rs.Items())
	})

	t.Run("worst distance is +Inf until full", func(t *testing.T) {
		rs := NewKNNResultSet(2)

		assert.True(t, math.IsInf(float64(rs.WorstDist()), 1))
		rs.Insert(0, 1)
		assert.True(t, math.IsInf(float64(rs.WorstDist()), 1))
		rs.Insert(1, 2)
		assert.Equal(t, float32(2), rs.WorstDist())
	})

	t.Run("evicts maximum at capacity", func(t *testing.T) {
		rs := NewKNNResultSet(2)
		rs.Insert(0, 5)
		rs.Insert(1, 3)

		assert.True(t, rs.Insert(2, 1))
		assert.Equal(t, []Item{{2, 1}, {1, 3}}, rs.Items())
		assert.Equal(t, float32(3), rs.WorstDist())
	})

	t.Run("rejects ties at capacity", func(t *testing.T) {
		rs := NewKNNResultSet(2)
		rs.Insert(0, 1)
		rs.Insert(1, 3)

		// Equal to the current maximum: strict less-than admission.
		assert.False(t, rs.Insert(2, 3))
		assert.Equal(t, []Item{{0, 1}, {1, 3}}, rs.Items())
	})

	t.Run("admits while not full", func(t *testing.T) {
		rs := NewKNNResultSet(2)
		rs.Insert(0, 1)

		assert.True(t, rs.Admits(100))
	})

	t.Run("zero capacity retains nothing", func(t *testing.T) {
		rs := NewKNNResultSet(0)

		assert.False(t, rs.Insert(0, 1))
		assert.False(t, rs.Admits(0))
		assert.Equal(t, 0, rs.Len())
		assert.False(t, rs.Full())
	})

	t.Run("negative capacity behaves as zero", func(t *testing.T) {
		rs := NewKNNResultSet(-1)

		assert.False(t, rs.Insert(0, 1))
		assert.Equal(t, 0, rs.Len())
	})

	t.Run("ties keep earlier candidates first", func(t *testing.T) {
		rs := NewKNNResultSet(3)
		rs.Insert(7, 2)
		rs.Insert(8, 2)
		rs.Insert(9, 2)

		assert.Equal(t, []Item{{7, 2}, {8, 2}, {9, 2}}, rs.Items())
	})
}

func TestRadiusResultSet(t *testing.T) {
	t.Run("inclusive admission", func(t *testing.T) {
		rs := NewRadiusResultSet(4)

		assert.True(t, rs.Insert(0, 0))
		assert.True(t, rs.Insert(1, 4))
		assert.False(t, rs.Insert(2, 4.0001))
		assert.Equal(t, 2, rs.Len())
	})

	t.Run("never full", func(t *testing.T) {
		rs := NewRadiusResultSet(1)
		for i := uint32(0); i < 100; i++ {
			rs.Insert(i, 0.5)
		}

		assert.False(t, rs.Full())
		assert.Equal(t, 100, rs.Len())
		assert.Equal(t, float32(1), rs.WorstDist())
	})

	t.Run("negative radius retains nothing", func(t *testing.T) {
		rs := NewRadiusResultSet(-1)

		assert.False(t, rs.Insert(0, 0))
		assert.False(t, rs.Admits(0))
	})

	t.Run("sort by distance", func(t *testing.T) {
		rs := NewRadiusResultSet(10)
		rs.Insert(3, 5)
		rs.Insert(1, 2)
		rs.Insert(2, 2)
		rs.Insert(0, 1)

		rs.SortByDistance()

		assert.Equal(t, []Item{{0, 1}, {1, 2}, {2, 2}, {3, 5}}, rs.Items())
	})
}
