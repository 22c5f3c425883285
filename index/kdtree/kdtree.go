// Package kdtree provides an exact KD-tree index over point-cloud data
// for k-nearest-neighbor and radius queries in low-dimensional
// Euclidean space.
//
// The tree partitions a permutation array of point indexes: leaves hold
// contiguous [lo, hi) ranges, internal nodes hold a split dimension and
// value plus two exclusively owned children. Per-node axis-aligned
// bounding boxes provide the distance lower bounds used for
// branch-and-bound pruning during search.
//
// A tree is immutable after construction, so concurrent read-only
// queries are safe without locking. Rebuild is not safe concurrently
// with in-flight queries and must be externally serialized.
package kdtree

import (
	"github.com/hupe1980/kdgo/index"
)

// nilNode marks an absent child handle.
const nilNode = int32(-1)

// node is either a leaf (left == nilNode) spanning perm[lo:hi], or an
// internal node splitting that range at splitVal along splitDim.
// Children with coordinate <= splitVal go left, > splitVal go right.
type node struct {
	lo, hi   int32
	splitDim int32
	splitVal float32
	left     int32
	right    int32
}

// Options contains configuration options for the KD-tree index.
type Options struct {
	// LeafSize is the maximum number of points stored in a leaf.
	// Ranges at or below this size are not split further, trading
	// tree depth for linear-scan cost at leaves.
	LeafSize int
}

// DefaultOptions contains the default configuration options for the
// KD-tree index.
var DefaultOptions = Options{
	LeafSize: 10,
}

// Tree is a KD-tree index over an adapted point collection.
//
// Tree holds a non-owning reference to the adaptor; the adapted
// collection must outlive the tree. Nodes live in a flat arena indexed
// by int32 handles, with bounding boxes stored in parallel flat arrays,
// so the whole tree is three slices regardless of point count.
type Tree[A index.Adaptor] struct {
	adaptor  A
	dim      int
	leafSize int

	count int      // point count cached at build time
	perm  []uint32 // permutation of [0, count)
	nodes []node   // node arena; root at 0 when count >= 0

	// boundsMin[id*dim+d], boundsMax[id*dim+d] bound the subtree of
	// node id along dimension d.
	boundsMin []float32
	boundsMax []float32
}

// New creates a KD-tree index of the given dimensionality over the
// adaptor and builds it immediately.
func New[A index.Adaptor](dim int, adaptor A, optFns ...func(o *Options)) (*Tree[A], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := index.ValidateBasicOptions(dim); err != nil {
		return nil, err
	}
	if opts.LeafSize <= 0 {
		return nil, &index.ErrInvalidLeafSize{LeafSize: opts.LeafSize}
	}

	t := &Tree[A]{
		adaptor:  adaptor,
		dim:      dim,
		leafSize: opts.LeafSize,
	}
	t.build()

	return t, nil
}

// Dim returns the index dimensionality.
func (t *Tree[A]) Dim() int { return t.dim }

// Len returns the number of indexed points (cached at build time).
func (t *Tree[A]) Len() int { return t.count }

// Rebuild discards the tree and rebuilds it against the adaptor's
// current contents. It must not run concurrently with queries.
func (t *Tree[A]) Rebuild() {
	t.build()
}

func (t *Tree[A]) build() {
	n := t.adaptor.Len()
	t.count = n

	t.perm = make([]uint32, n)
	for i := range t.perm {
		t.perm[i] = uint32(i)
	}

	t.nodes = t.nodes[:0]
	t.boundsMin = t.boundsMin[:0]
	t.boundsMax = t.boundsMax[:0]

	t.buildNode(0, n)
}

// allocNode appends a fresh node and its bounding-box slots to the
// arenas and returns its handle.
func (t *Tree[A]) allocNode() int32 {
	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{left: nilNode, right: nilNode})
	for d := 0; d < t.dim; d++ {
		t.boundsMin = append(t.boundsMin, 0)
		t.boundsMax = append(t.boundsMax, 0)
	}
	return id
}

// buildNode recursively builds the subtree for perm[lo:hi] and returns
// its handle. An empty range yields an empty leaf (only possible at the
// root, for an empty collection).
func (t *Tree[A]) buildNode(lo, hi int) int32 {
	id := t.allocNode()
	t.nodes[id].lo = int32(lo)
	t.nodes[id].hi = int32(hi)

	if hi-lo > 0 {
		t.computeBounds(id, lo, hi)
	}

	if hi-lo <= t.leafSize {
		return id
	}

	// Split on the dimension with the greatest coordinate spread, at
	// the midpoint of its extrema. Midpoint over median keeps the
	// partition a single pass; the resulting tree can be less balanced
	// for skewed inputs but correctness is unaffected.
	base := int(id) * t.dim
	splitDim := 0
	maxSpread := float32(-1)
	for d := 0; d < t.dim; d++ {
		spread := t.boundsMax[base+d] - t.boundsMin[base+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	// All points coincide along every dimension: force a leaf to
	// prevent infinite recursion.
	if maxSpread <= 0 {
		return id
	}

	splitVal := (t.boundsMin[base+splitDim] + t.boundsMax[base+splitDim]) / 2
	mid := t.partition(lo, hi, splitDim, splitVal)

	// The midpoint lies strictly between distinct extrema, so both
	// halves are normally non-empty. At float resolution the midpoint
	// of two adjacent values can collapse onto an extremum; fall back
	// to a leaf rather than recurse on an empty range.
	if mid == lo || mid == hi {
		return id
	}

	left := t.buildNode(lo, mid)
	right := t.buildNode(mid, hi)

	// Reassign through the arena: buildNode may have grown it.
	nd := &t.nodes[id]
	nd.splitDim = int32(splitDim)
	nd.splitVal = splitVal
	nd.left = left
	nd.right = right

	return id
}

// computeBounds fills node id's bounding box from perm[lo:hi] using the
// adaptor's subset-extrema scan.
func (t *Tree[A]) computeBounds(id int32, lo, hi int) {
	base := int(id) * t.dim
	sub := t.perm[lo:hi]
	for d := 0; d < t.dim; d++ {
		lov, hiv := t.adaptor.Bounds(sub, d)
		t.boundsMin[base+d] = lov
		t.boundsMax[base+d] = hiv
	}
}

// partition reorders perm[lo:hi] in a single pass so that all indexes
// with coordinate <= val along dim precede those with coordinate > val,
// and returns the first index of the right half.
func (t *Tree[A]) partition(lo, hi, dim int, val float32) int {
	i, j := lo, hi-1
	for i <= j {
		for i <= j && t.adaptor.Coordinate(t.perm[i], dim) <= val {
			i++
		}
		for i <= j && t.adaptor.Coordinate(t.perm[j], dim) > val {
			j--
		}
		if i < j {
			t.perm[i], t.perm[j] = t.perm[j], t.perm[i]
			i++
			j--
		}
	}
	return i
}

// Permutation returns the internal point-index permutation. The
// returned slice aliases internal state and must not be mutated.
// Exposed for build-invariant verification and diagnostics.
func (t *Tree[A]) Permutation() []uint32 { return t.perm }
