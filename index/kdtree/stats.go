package kdtree

import "fmt"

// Stats describes the shape of a built tree.
type Stats struct {
	NumPoints int // indexed point count
	NumNodes  int // total nodes in the arena
	NumLeaves int // leaf count
	MaxDepth  int // root is depth 1; 0 for an empty arena
	LeafSize  int // configured leaf-size threshold
	MaxLeaf   int // largest leaf occupancy (can exceed LeafSize for degenerate input)
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("kdtree: points=%d nodes=%d leaves=%d depth=%d leafSize=%d maxLeaf=%d",
		s.NumPoints, s.NumNodes, s.NumLeaves, s.MaxDepth, s.LeafSize, s.MaxLeaf)
}

// Stats walks the tree and returns its shape.
func (t *Tree[A]) Stats() Stats {
	s := Stats{
		NumPoints: t.count,
		NumNodes:  len(t.nodes),
		LeafSize:  t.leafSize,
	}
	if len(t.nodes) > 0 {
		t.statsNode(0, 1, &s)
	}
	return s
}

func (t *Tree[A]) statsNode(id int32, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	nd := &t.nodes[id]
	if nd.left == nilNode {
		s.NumLeaves++
		if occ := int(nd.hi - nd.lo); occ > s.MaxLeaf {
			s.MaxLeaf = occ
		}
		return
	}
	t.statsNode(nd.left, depth+1, s)
	t.statsNode(nd.right, depth+1, s)
}
