// Package queue provides the bounded result collectors used by kdgo
// search traversals.
package queue

import (
	"math"
	"sort"
)

// Item is a single (point index, squared distance) candidate.
type Item struct {
	Index    uint32  // Index is the point index in the adapted collection.
	Distance float32 // Distance is the squared L2 distance to the query.
}

// ResultSet is the collector contract consumed by branch-and-bound
// traversals. Admits doubles as the pruning predicate: a subtree whose
// distance lower bound is not admissible cannot contribute a result.
type ResultSet interface {
	// Insert offers a candidate to the collector. It reports whether
	// the candidate was retained.
	Insert(index uint32, dist float32) bool

	// Admits reports whether a candidate at the given squared distance
	// could still be retained.
	Admits(dist float32) bool

	// WorstDist returns the current pruning threshold: the maximum
	// retained distance for a full k-best collector (+Inf while not
	// full), or the fixed radius for a radius collector.
	WorstDist() float32

	// Full reports whether the collector is at capacity.
	Full() bool
}

// Compile-time interface checks.
var (
	_ ResultSet = (*KNNResultSet)(nil)
	_ ResultSet = (*RadiusResultSet)(nil)
)

// KNNResultSet holds the k smallest-distance candidates seen so far,
// sorted ascending by distance. Capacity is fixed at construction.
//
// Admission at capacity is strict less-than: a candidate whose distance
// equals the current maximum is rejected. This keeps results
// deterministic for tied inputs.
type KNNResultSet struct {
	capacity int
	items    []Item
}

// NewKNNResultSet creates a collector with capacity k.
// A non-positive k yields a collector that retains nothing.
func NewKNNResultSet(k int) *KNNResultSet {
	if k < 0 {
		k = 0
	}
	return &KNNResultSet{
		capacity: k,
		items:    make([]Item, 0, k),
	}
}

// Insert offers a candidate, maintaining ascending order. The insert
// position is found by binary search; at capacity the current maximum
// is evicted. O(k) worst case per insertion.
func (rs *KNNResultSet) Insert(index uint32, dist float32) bool {
	if !rs.Admits(dist) {
		return false
	}

	// First position with a strictly greater distance. Ties keep
	// earlier-seen candidates first.
	pos := sort.Search(len(rs.items), func(i int) bool {
		return rs.items[i].Distance > dist
	})

	if len(rs.items) < rs.capacity {
		rs.items = append(rs.items, Item{})
	}
	copy(rs.items[pos+1:], rs.items[pos:])
	rs.items[pos] = Item{Index: index, Distance: dist}

	return true
}

// Admits reports whether a candidate at dist would be retained.
func (rs *KNNResultSet) Admits(dist float32) bool {
	if rs.capacity == 0 {
		return false
	}
	if len(rs.items) < rs.capacity {
		return true
	}
	return dist < rs.items[len(rs.items)-1].Distance
}

// WorstDist returns the current maximum retained distance, or +Inf
// while the collector is not yet full.
func (rs *KNNResultSet) WorstDist() float32 {
	if len(rs.items) < rs.capacity {
		return float32(math.Inf(1))
	}
	if len(rs.items) == 0 {
		return float32(math.Inf(1))
	}
	return rs.items[len(rs.items)-1].Distance
}

// Full reports whether the collector holds k candidates.
func (rs *KNNResultSet) Full() bool {
	return len(rs.items) == rs.capacity && rs.capacity > 0
}

// Len returns the number of retained candidates.
func (rs *KNNResultSet) Len() int { return len(rs.items) }

// Items returns the retained candidates in ascending distance order.
// The returned slice aliases internal state and must not be mutated.
func (rs *KNNResultSet) Items() []Item { return rs.items }

// RadiusResultSet accumulates every candidate within a fixed squared
// radius. Admission is inclusive (dist <= radius); the match count is
// unbounded.
type RadiusResultSet struct {
	radius float32
	items  []Item
}

// NewRadiusResultSet creates a collector for the given squared radius.
// A negative radius yields a collector that retains nothing.
func NewRadiusResultSet(radiusSq float32) *RadiusResultSet {
	return &RadiusResultSet{radius: radiusSq}
}

// Insert offers a candidate, retaining it if within the radius.
// Candidates are kept in traversal order; see SortByDistance.
func (rs *RadiusResultSet) Insert(index uint32, dist float32) bool {
	if !rs.Admits(dist) {
		return false
	}
	rs.items = append(rs.items, Item{Index: index, Distance: dist})
	return true
}

// Admits reports whether dist lies within the radius.
func (rs *RadiusResultSet) Admits(dist float32) bool {
	return dist <= rs.radius && rs.radius >= 0
}

// WorstDist returns the fixed squared radius.
func (rs *RadiusResultSet) WorstDist() float32 { return rs.radius }

// Full always reports false: radius collection is unbounded.
func (rs *RadiusResultSet) Full() bool { return false }

// Len returns the number of retained candidates.
func (rs *RadiusResultSet) Len() int { return len(rs.items) }

// Items returns the retained candidates. The returned slice aliases
// internal state and must not be mutated.
func (rs *RadiusResultSet) Items() []Item { return rs.items }

// SortByDistance orders the retained candidates ascending by distance,
// ties broken by point index.
func (rs *RadiusResultSet) SortByDistance() {
	sort.Slice(rs.items, func(i, j int) bool {
		if rs.items[i].Distance != rs.items[j].Distance {
			return rs.items[i].Distance < rs.items[j].Distance
		}
		return rs.items[i].Index < rs.items[j].Index
	})
}
