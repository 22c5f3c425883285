package kdtree

import (
	"testing"

	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/pointcloud"
	"github.com/hupe1980/kdgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects invalid dimension", func(t *testing.T) {
		cloud := pointcloud.New(3)

		_, err := New(0, cloud)
		assert.Error(t, err)
		assert.IsType(t, &index.ErrInvalidDimension{}, err)
	})

	t.Run("rejects invalid leaf size", func(t *testing.T) {
		cloud := pointcloud.New(3)

		_, err := New(3, cloud, func(o *Options) { o.LeafSize = 0 })
		assert.Error(t, err)
		assert.IsType(t, &index.ErrInvalidLeafSize{}, err)
	})

	t.Run("empty collection", func(t *testing.T) {
		cloud := pointcloud.New(3)

		tree, err := New(3, cloud)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Len())

		results, err := tree.KNNSearch([]float32{0, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = tree.RadiusSearch([]float32{0, 0, 0}, 100)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("single point", func(t *testing.T) {
		cloud, _ := pointcloud.FromSlice(3, []float32{1, 2, 3})

		tree, err := New(3, cloud)
		require.NoError(t, err)

		s := tree.Stats()
		assert.Equal(t, 1, s.NumPoints)
		assert.Equal(t, 1, s.NumNodes)
		assert.Equal(t, 1, s.NumLeaves)
	})
}

func TestBuildInvariants(t *testing.T) {
	assertPermutation := func(t *testing.T, perm []uint32, n int) {
		t.Helper()
		require.Len(t, perm, n)
		seen := make(map[uint32]bool, n)
		for _, v := range perm {
			require.Less(t, int(v), n)
			require.False(t, seen[v], "duplicate index %d in permutation", v)
			seen[v] = true
		}
	}

	t.Run("permutation covers every point exactly once", func(t *testing.T) {
		rng := testutil.NewRNG(1)
		for _, n := range []int{1, 9, 10, 11, 100, 1000} {
			cloud := testutil.RandomCloud(rng, 3, n, -10, 10)

			tree, err := New(3, cloud)
			require.NoError(t, err)

			assertPermutation(t, tree.Permutation(), n)
		}
	})

	t.Run("leaf size threshold respected", func(t *testing.T) {
		rng := testutil.NewRNG(2)
		cloud := testutil.RandomCloud(rng, 3, 500, 0, 1)

		for _, leafSize := range []int{1, 4, 10, 100} {
			tree, err := New(3, cloud, func(o *Options) { o.LeafSize = leafSize })
			require.NoError(t, err)

			s := tree.Stats()
			assert.LessOrEqual(t, s.MaxLeaf, leafSize, "leafSize=%d", leafSize)
			assert.Equal(t, 500, s.NumPoints)
		}
	})

	t.Run("leaf size larger than collection yields single leaf", func(t *testing.T) {
		cloud, _ := pointcloud.FromSlice(2, []float32{1, 2, 3, 4})

		tree, err := New(2, cloud, func(o *Options) { o.LeafSize = 100 })
		require.NoError(t, err)

		s := tree.Stats()
		assert.Equal(t, 1, s.NumNodes)
		assert.Equal(t, 1, s.NumLeaves)
	})

	t.Run("identical points build a forced leaf", func(t *testing.T) {
		cloud := pointcloud.New(3)
		for i := 0; i < 100; i++ {
			require.NoError(t, cloud.Append(7, 7, 7))
		}

		tree, err := New(3, cloud, func(o *Options) { o.LeafSize = 10 })
		require.NoError(t, err)

		s := tree.Stats()
		assert.Equal(t, 100, s.NumPoints)
		// One oversized leaf instead of infinite recursion.
		assert.Equal(t, 1, s.NumLeaves)
		assert.Equal(t, 100, s.MaxLeaf)
		assertPermutation(t, tree.Permutation(), 100)
	})

	t.Run("duplicates mixed with spread points", func(t *testing.T) {
		cloud := pointcloud.New(2)
		for i := 0; i < 50; i++ {
			require.NoError(t, cloud.Append(1, 1))
		}
		for i := 0; i < 50; i++ {
			require.NoError(t, cloud.Append(float32(i), float32(-i)))
		}

		tree, err := New(2, cloud, func(o *Options) { o.LeafSize = 5 })
		require.NoError(t, err)

		assertPermutation(t, tree.Permutation(), 100)
	})
}

func TestRebuild(t *testing.T) {
	cloud := pointcloud.New(2)
	require.NoError(t, cloud.Append(0, 0))
	require.NoError(t, cloud.Append(1, 1))

	tree, err := New(2, cloud)
	require.NoError(t, err)
	require.Equal(t, 2, tree.Len())

	// Mutate the collection, then rebuild to pick it up.
	require.NoError(t, cloud.Append(2, 2))
	tree.Rebuild()

	assert.Equal(t, 3, tree.Len())

	results, err := tree.KNNSearch([]float32{2, 2}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint32(2), results[0].Index)
	assert.Equal(t, float32(0), results[0].Distance)
}

func TestStats(t *testing.T) {
	rng := testutil.NewRNG(3)
	cloud := testutil.RandomCloud(rng, 3, 1000, 0, 1)

	tree, err := New(3, cloud, func(o *Options) { o.LeafSize = 8 })
	require.NoError(t, err)

	s := tree.Stats()
	assert.Equal(t, 1000, s.NumPoints)
	assert.Equal(t, 8, s.LeafSize)
	assert.Greater(t, s.NumLeaves, 1000/8/2)
	assert.GreaterOrEqual(t, s.MaxDepth, 2)
	// Internal nodes have exactly two children.
	assert.Equal(t, s.NumNodes, 2*s.NumLeaves-1)
	assert.NotEmpty(t, s.String())
}
