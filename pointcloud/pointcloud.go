// Package pointcloud provides a dense point container that satisfies
// the index.Adaptor contract.
//
// Coordinates are stored row-major in a single flat float32 slice, so
// the container itself is the adaptor: no per-point allocation, no
// translation layer beyond index arithmetic.
package pointcloud

import (
	"fmt"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
)

// Compile-time check to ensure Cloud satisfies the adaptor contract.
var _ index.Adaptor = (*Cloud)(nil)

// Cloud is an ordered sequence of points of fixed dimensionality.
// Insertion order defines the point indexes used by indexes built over
// the cloud. Mutating a cloud after an index has been built over it
// invalidates that index; the caller must rebuild.
type Cloud struct {
	dim  int
	data []float32
}

// New creates an empty cloud of the given dimensionality.
func New(dim int) *Cloud {
	return &Cloud{dim: dim}
}

// FromSlice creates a cloud wrapping row-major coordinate data.
// The slice is used directly, not copied; len(data) must be a multiple
// of dim.
func FromSlice(dim int, data []float32) (*Cloud, error) {
	if dim <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: dim}
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("pointcloud: data length %d is not a multiple of dimension %d", len(data), dim)
	}
	return &Cloud{dim: dim, data: data}, nil
}

// Dim returns the cloud's dimensionality.
func (c *Cloud) Dim() int { return c.dim }

// Append adds one point to the cloud.
func (c *Cloud) Append(coords ...float32) error {
	if len(coords) != c.dim {
		return &index.ErrDimensionMismatch{Expected: c.dim, Actual: len(coords)}
	}
	c.data = append(c.data, coords...)
	return nil
}

// Point returns the coordinates of point i. The returned slice aliases
// internal storage and must not be mutated.
func (c *Cloud) Point(i uint32) []float32 {
	off := int(i) * c.dim
	return c.data[off : off+c.dim]
}

// Data returns the raw row-major coordinate storage. The returned
// slice aliases internal state and must not be mutated.
func (c *Cloud) Data() []float32 {
	return c.data
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.data) / c.dim
}

// Coordinate returns the dim'th coordinate of point i.
func (c *Cloud) Coordinate(i uint32, dim int) float32 {
	return c.data[int(i)*c.dim+dim]
}

// SignedDistance returns the signed distance of point i's dim'th
// coordinate from v.
func (c *Cloud) SignedDistance(i uint32, dim int, v float32) float32 {
	return c.data[int(i)*c.dim+dim] - v
}

// DistanceBetween returns the squared L2 distance between points i and j.
func (c *Cloud) DistanceBetween(i, j uint32) float32 {
	return distance.SquaredL2(c.Point(i), c.Point(j))
}

// Bounds scans the given subset of point indexes and returns the
// coordinate extrema along dim. indices must be non-empty.
func (c *Cloud) Bounds(indices []uint32, dim int) (minVal, maxVal float32) {
	minVal = c.Coordinate(indices[0], dim)
	maxVal = minVal
	for _, idx := range indices[1:] {
		v := c.Coordinate(idx, dim)
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
