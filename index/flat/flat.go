// Package flat provides an exact linear-scan index over the same
// adaptor contract as the KD-tree. It is the sensible choice below a
// few thousand points, and serves as the ground truth the KD-tree is
// verified against.
package flat

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/queue"
)

// SearchOptions contains per-query configuration options.
type SearchOptions struct {
	// Selection restricts results to the given set of point indexes.
	// A nil selection matches every point.
	Selection *roaring.Bitmap
}

// Flat is a brute-force index over an adapted point collection. It
// holds a non-owning reference to the adaptor and caches the point
// count at construction; Rebuild refreshes the count after external
// mutation.
type Flat[A index.Adaptor] struct {
	adaptor A
	dim     int
	count   int
}

// New creates a flat index of the given dimensionality over the adaptor.
func New[A index.Adaptor](dim int, adaptor A) (*Flat[A], error) {
	if err := index.ValidateBasicOptions(dim); err != nil {
		return nil, err
	}
	return &Flat[A]{
		adaptor: adaptor,
		dim:     dim,
		count:   adaptor.Len(),
	}, nil
}

// Dim returns the index dimensionality.
func (f *Flat[A]) Dim() int { return f.dim }

// Len returns the number of indexed points.
func (f *Flat[A]) Len() int { return f.count }

// Rebuild refreshes the cached point count.
func (f *Flat[A]) Rebuild() {
	f.count = f.adaptor.Len()
}

// KNNSearch scans every point and returns the k nearest, sorted
// ascending by squared L2 distance. Admission semantics match the
// KD-tree exactly: min(k, Len()) results, strict less-than ties.
func (f *Flat[A]) KNNSearch(q []float32, k int, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	var opts SearchOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(q) != f.dim {
		return nil, &index.ErrDimensionMismatch{Expected: f.dim, Actual: len(q)}
	}

	if k <= 0 || f.count == 0 {
		return []index.SearchResult{}, nil
	}

	rs := queue.NewKNNResultSet(k)
	f.scan(q, rs, opts.Selection)

	return toSearchResults(rs.Items()), nil
}

// RadiusSearch scans every point and returns those within the given
// squared L2 radius (inclusive), sorted ascending by distance.
func (f *Flat[A]) RadiusSearch(q []float32, radiusSq float32, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	var opts SearchOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(q) != f.dim {
		return nil, &index.ErrDimensionMismatch{Expected: f.dim, Actual: len(q)}
	}

	if radiusSq < 0 || f.count == 0 {
		return []index.SearchResult{}, nil
	}

	rs := queue.NewRadiusResultSet(radiusSq)
	f.scan(q, rs, opts.Selection)
	rs.SortByDistance()

	return toSearchResults(rs.Items()), nil
}

func (f *Flat[A]) scan(q []float32, rs queue.ResultSet, sel *roaring.Bitmap) {
	for i := 0; i < f.count; i++ {
		pi := uint32(i)
		if sel != nil && !sel.Contains(pi) {
			continue
		}
		var sum float32
		for d := 0; d < f.dim; d++ {
			sd := f.adaptor.SignedDistance(pi, d, q[d])
			sum += sd * sd
		}
		rs.Insert(pi, sum)
	}
}

func toSearchResults(items []queue.Item) []index.SearchResult {
	results := make([]index.SearchResult, len(items))
	for i, it := range items {
		results[i] = index.SearchResult{Index: it.Index, Distance: it.Distance}
	}
	return results
}
