// Package index provides the contracts shared by kdgo spatial indexes.
package index

import (
	"fmt"
)

// Adaptor is the access protocol an index consumes to read point data.
//
// It decouples the index from the point container's native layout: any
// collection with O(1) indexed coordinate access can be indexed by
// implementing these five methods. Indexes are parameterized over the
// concrete Adaptor type, so calls monomorphize at compile time and pay
// no dynamic-dispatch cost on the hot path.
//
// Implementations must be side-effect free. Point indexes passed to
// Coordinate, SignedDistance, DistanceBetween and Bounds are a caller
// precondition: passing an index >= Len() is undefined behavior and is
// deliberately not checked at this layer.
type Adaptor interface {
	// Len returns the number of points in the collection.
	// The index caches this value at build time.
	Len() int

	// Coordinate returns the dim'th coordinate of point i.
	Coordinate(i uint32, dim int) float32

	// SignedDistance returns the signed distance of point i's dim'th
	// coordinate from v. For squared L2 this is Coordinate(i, dim) - v.
	SignedDistance(i uint32, dim int, v float32) float32

	// DistanceBetween returns the full metric distance between points
	// i and j (sum of squared per-dimension differences for L2).
	DistanceBetween(i, j uint32) float32

	// Bounds scans the given subset of point indexes and returns the
	// coordinate extrema along dim. indices must be non-empty.
	Bounds(indices []uint32, dim int) (min, max float32)
}

// SearchResult represents a single query match.
type SearchResult struct {
	// Index is the point index in the adapted collection.
	Index uint32

	// Distance is the squared L2 distance between the query and the
	// matched point. Callers needing true distance take the square
	// root on output.
	Distance float32
}

// ErrDimensionMismatch is a named error type for query/index
// dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrInvalidLeafSize indicates a non-positive leaf size.
type ErrInvalidLeafSize struct {
	LeafSize int
}

// Error returns the error message for an invalid leaf size.
func (e *ErrInvalidLeafSize) Error() string {
	return fmt.Sprintf("invalid leaf size: %d", e.LeafSize)
}

// ValidateBasicOptions validates options common to all index types.
func ValidateBasicOptions(dimension int) error {
	if dimension <= 0 {
		return &ErrInvalidDimension{Dimension: dimension}
	}
	return nil
}
