// Package distance provides the scalar distance primitives used by
// kdgo indexes. All distances are squared L2 unless stated otherwise;
// square roots are never taken internally.
package distance

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// vectors. Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L1 calculates the Manhattan distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func L1(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// AxisGap returns the distance from v to the interval [lo, hi] along a
// single axis, or 0 if v lies inside the interval.
func AxisGap(v, lo, hi float32) float32 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}

// Sqrt converts a squared distance to a true distance.
func Sqrt(d float32) float32 {
	return float32(math.Sqrt(float64(d)))
}
