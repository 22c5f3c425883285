// Package testutil provides deterministic helpers shared by kdgo tests:
// a seeded thread-safe RNG, random cloud generation and brute-force
// reference queries.
package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/pointcloud"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*(maxVal-minVal)
	}
}

// RandomCloud generates a cloud of n points of the given dimensionality
// with coordinates uniform in [minVal, maxVal).
func RandomCloud(rng *RNG, dim, n int, minVal, maxVal float32) *pointcloud.Cloud {
	data := make([]float32, dim*n)
	rng.FillUniformRange(data, minVal, maxVal)
	cloud, err := pointcloud.FromSlice(dim, data)
	if err != nil {
		panic(err) // dim and n are test-controlled
	}
	return cloud
}

// BruteForceKNN returns the k nearest points to q by exhaustive scan,
// sorted ascending by squared distance with the same strict less-than
// tie policy as the indexes.
func BruteForceKNN(a index.Adaptor, dim int, q []float32, k int) []index.SearchResult {
	if k <= 0 {
		return []index.SearchResult{}
	}

	n := a.Len()
	all := make([]index.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		all = append(all, index.SearchResult{
			Index:    uint32(i),
			Distance: pointDist(a, dim, uint32(i), q),
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Distance < all[j].Distance
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}

// BruteForceRadius returns every point within radiusSq of q (inclusive)
// by exhaustive scan, sorted ascending by distance then index.
func BruteForceRadius(a index.Adaptor, dim int, q []float32, radiusSq float32) []index.SearchResult {
	matches := []index.SearchResult{}
	if radiusSq < 0 {
		return matches
	}

	n := a.Len()
	for i := 0; i < n; i++ {
		d := pointDist(a, dim, uint32(i), q)
		if d <= radiusSq {
			matches = append(matches, index.SearchResult{Index: uint32(i), Distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Index < matches[j].Index
	})

	return matches
}

func pointDist(a index.Adaptor, dim int, i uint32, q []float32) float32 {
	p := make([]float32, dim)
	for d := 0; d < dim; d++ {
		p[d] = a.Coordinate(i, d)
	}
	return distance.SquaredL2(p, q)
}
