package kdgo

import (
	"context"
	"testing"

	"github.com/hupe1980/kdgo/index/kdtree"
	"github.com/hupe1980/kdgo/pointcloud"
	"github.com/hupe1980/kdgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFiveCloud(t *testing.T) *pointcloud.Cloud {
	t.Helper()
	cloud, err := pointcloud.FromSlice(3, []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		5, 5, 5,
	})
	require.NoError(t, err)
	return cloud
}

func TestKDGo(t *testing.T) {
	ctx := context.Background()

	t.Run("New rejects invalid options", func(t *testing.T) {
		cloud := pointcloud.New(3)

		_, err := New(0, cloud)
		assert.Error(t, err)
		assert.IsType(t, &ErrInvalidDimension{}, err)

		_, err = New(3, cloud, WithLeafSize(-1))
		assert.Error(t, err)
		assert.IsType(t, &ErrInvalidLeafSize{}, err)
	})

	t.Run("KNNSearch fixed scenario", func(t *testing.T) {
		kd, err := New(3, newFiveCloud(t), WithLeafSize(1))
		require.NoError(t, err)

		results, err := kd.KNNSearch(ctx, []float32{0, 0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, []float32{0, 1, 1}, []float32{
			results[0].Distance, results[1].Distance, results[2].Distance,
		})
		for _, r := range results {
			assert.NotEqual(t, uint32(4), r.Index)
		}
	})

	t.Run("RadiusSearch fixed scenario", func(t *testing.T) {
		kd, err := New(3, newFiveCloud(t), WithLeafSize(1))
		require.NoError(t, err)

		results, err := kd.RadiusSearch(ctx, []float32{0, 0, 0}, 1)
		require.NoError(t, err)

		indexes := make([]uint32, 0, len(results))
		for _, r := range results {
			indexes = append(indexes, r.Index)
		}
		assert.ElementsMatch(t, []uint32{0, 1, 2, 3}, indexes)
	})

	t.Run("dimension mismatch is translated", func(t *testing.T) {
		kd, err := New(3, newFiveCloud(t))
		require.NoError(t, err)

		_, err = kd.KNNSearch(ctx, []float32{0, 0}, 1)
		assert.Error(t, err)
		assert.IsType(t, &ErrDimensionMismatch{}, err)
	})

	t.Run("BatchKNNSearch preserves input order", func(t *testing.T) {
		rng := testutil.NewRNG(31)
		cloud := testutil.RandomCloud(rng, 3, 500, 0, 1)

		kd, err := New(3, cloud, WithBatchConcurrency(4))
		require.NoError(t, err)

		queries := make([][]float32, 32)
		for i := range queries {
			q := make([]float32, 3)
			rng.FillUniform(q)
			queries[i] = q
		}

		batch, err := kd.BatchKNNSearch(ctx, queries, 5)
		require.NoError(t, err)
		require.Len(t, batch, len(queries))

		for i, q := range queries {
			single, err := kd.KNNSearch(ctx, q, 5)
			require.NoError(t, err)
			assert.Equal(t, single, batch[i], "query %d", i)
		}
	})

	t.Run("BatchKNNSearch propagates errors", func(t *testing.T) {
		kd, err := New(3, newFiveCloud(t))
		require.NoError(t, err)

		_, err = kd.BatchKNNSearch(ctx, [][]float32{{0, 0, 0}, {0, 0}}, 1)
		assert.Error(t, err)
	})

	t.Run("Rebuild picks up mutation", func(t *testing.T) {
		cloud := pointcloud.New(2)
		require.NoError(t, cloud.Append(0, 0))

		kd, err := New(2, cloud)
		require.NoError(t, err)
		require.Equal(t, 1, kd.Len())

		require.NoError(t, cloud.Append(9, 9))
		kd.Rebuild(ctx)

		assert.Equal(t, 2, kd.Len())

		results, err := kd.KNNSearch(ctx, []float32{9, 9}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(1), results[0].Index)
	})

	t.Run("metrics are collected", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}

		kd, err := New(3, newFiveCloud(t), WithMetricsCollector(metrics))
		require.NoError(t, err)

		_, err = kd.KNNSearch(ctx, []float32{0, 0, 0}, 2)
		require.NoError(t, err)
		_, err = kd.RadiusSearch(ctx, []float32{0, 0, 0}, 1)
		require.NoError(t, err)
		_, err = kd.KNNSearch(ctx, []float32{0, 0}, 2) // dimension mismatch
		require.Error(t, err)

		assert.Equal(t, int64(1), metrics.BuildCount.Load())
		assert.Equal(t, int64(2), metrics.SearchCount.Load())
		assert.Equal(t, int64(1), metrics.SearchErrors.Load())
		assert.Equal(t, int64(1), metrics.RadiusSearchCount.Load())
	})

	t.Run("options pass through to the tree", func(t *testing.T) {
		rng := testutil.NewRNG(32)
		cloud := testutil.RandomCloud(rng, 3, 100, 0, 1)

		kd, err := New(3, cloud, WithLeafSize(5))
		require.NoError(t, err)

		s := kd.Stats()
		assert.Equal(t, 5, s.LeafSize)
		assert.LessOrEqual(t, s.MaxLeaf, 5)
	})

	t.Run("search options pass through", func(t *testing.T) {
		kd, err := New(3, newFiveCloud(t))
		require.NoError(t, err)

		results, err := kd.RadiusSearch(ctx, []float32{0, 0, 0}, 100, func(o *kdtree.SearchOptions) {
			o.Sorted = false
		})
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})
}
