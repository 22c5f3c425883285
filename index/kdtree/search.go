package kdtree

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/queue"
)

// SearchOptions contains per-query configuration options.
type SearchOptions struct {
	// Selection restricts results to the given set of point indexes.
	// A nil selection matches every point. Pruning still uses whole
	// subtree bounds, so a sparse selection narrows results but not
	// the traversal.
	Selection *roaring.Bitmap

	// Sorted orders radius-query results ascending by distance.
	// KNN results are always sorted.
	Sorted bool
}

// DefaultSearchOptions contains the default per-query options.
var DefaultSearchOptions = SearchOptions{
	Sorted: true,
}

// KNNSearch returns the k nearest points to q, sorted ascending by
// squared L2 distance. It returns min(k, Len()) results; k <= 0 yields
// an empty result. Ties at the k'th distance resolve in favor of the
// candidate encountered first (strict less-than admission).
func (t *Tree[A]) KNNSearch(q []float32, k int, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	opts := DefaultSearchOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(q) != t.dim {
		return nil, &index.ErrDimensionMismatch{Expected: t.dim, Actual: len(q)}
	}

	if k <= 0 || t.count == 0 {
		return []index.SearchResult{}, nil
	}

	rs := queue.NewKNNResultSet(k)
	t.search(0, q, rs, opts.Selection)

	return toSearchResults(rs.Items()), nil
}

// RadiusSearch returns every point within the given squared L2 radius
// of q (inclusive). A negative radius yields an empty result. Results
// are sorted ascending by distance unless Sorted is disabled, in which
// case they arrive in traversal order.
func (t *Tree[A]) RadiusSearch(q []float32, radiusSq float32, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	opts := DefaultSearchOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(q) != t.dim {
		return nil, &index.ErrDimensionMismatch{Expected: t.dim, Actual: len(q)}
	}

	if radiusSq < 0 || t.count == 0 {
		return []index.SearchResult{}, nil
	}

	rs := queue.NewRadiusResultSet(radiusSq)
	t.search(0, q, rs, opts.Selection)

	if opts.Sorted {
		rs.SortByDistance()
	}

	return toSearchResults(rs.Items()), nil
}

// search walks the subtree rooted at id, near child first, descending
// into the far child only while its bounding-box lower bound is still
// admissible.
func (t *Tree[A]) search(id int32, q []float32, rs queue.ResultSet, sel *roaring.Bitmap) {
	nd := &t.nodes[id]

	if nd.left == nilNode {
		t.scanLeaf(nd, q, rs, sel)
		return
	}

	near, far := nd.left, nd.right
	if q[nd.splitDim]-nd.splitVal > 0 {
		near, far = nd.right, nd.left
	}

	t.search(near, q, rs, sel)

	if rs.Admits(t.minDistToNode(far, q)) {
		t.search(far, q, rs, sel)
	}
}

// scanLeaf computes the exact distance to every point in the leaf and
// offers each to the collector.
func (t *Tree[A]) scanLeaf(nd *node, q []float32, rs queue.ResultSet, sel *roaring.Bitmap) {
	for p := nd.lo; p < nd.hi; p++ {
		pi := t.perm[p]
		if sel != nil && !sel.Contains(pi) {
			continue
		}
		rs.Insert(pi, t.distToPoint(pi, q))
	}
}

// distToPoint returns the squared L2 distance between point pi and q,
// accumulated from the adaptor's per-dimension signed distances.
func (t *Tree[A]) distToPoint(pi uint32, q []float32) float32 {
	var sum float32
	for d := 0; d < t.dim; d++ {
		sd := t.adaptor.SignedDistance(pi, d, q[d])
		sum += sd * sd
	}
	return sum
}

// minDistToNode returns a lower bound on the squared distance from q to
// any point in node id's subtree: the squared gap to its bounding box.
func (t *Tree[A]) minDistToNode(id int32, q []float32) float32 {
	base := int(id) * t.dim
	var sum float32
	for d := 0; d < t.dim; d++ {
		gap := distance.AxisGap(q[d], t.boundsMin[base+d], t.boundsMax[base+d])
		sum += gap * gap
	}
	return sum
}

func toSearchResults(items []queue.Item) []index.SearchResult {
	results := make([]index.SearchResult, len(items))
	for i, it := range items {
		results[i] = index.SearchResult{Index: it.Index, Distance: it.Distance}
	}
	return results
}
