// Package kdgo provides an embedded KD-tree spatial index for
// point-cloud data in Go.
//
// Kdgo supports exact nearest-neighbor and radius queries in
// low-dimensional Euclidean space with:
//
//   - A zero-overhead adaptor contract: index any point container via
//     compile-time generics, no dynamic dispatch on the hot path
//   - Branch-and-bound search over per-node bounding boxes
//   - Squared-distance arithmetic throughout (no internal square roots)
//   - Selection bitmaps (Roaring) to restrict queries to point subsets
//   - Concurrent batch queries over an immutable index
//   - Point-cloud blob I/O (raw/LZ4/zstd) against local, in-memory,
//     S3 and MinIO storage
//
// # Quick Start
//
// Build an index over a dense cloud and query it:
//
//	cloud := pointcloud.New(3)
//	for _, p := range points {
//	    _ = cloud.Append(p[0], p[1], p[2])
//	}
//
//	kd, err := kdgo.New(3, cloud)
//	if err != nil {
//	    panic(err)
//	}
//
//	results, err := kd.KNNSearch(ctx, []float32{0.5, 0.5, 0.5}, 10)
//
//	matches, err := kd.RadiusSearch(ctx, []float32{0.5, 0.5, 0.5}, 0.25)
//
// Distances are squared L2 values; take the square root on output if
// true distances are needed.
//
// # Concurrency
//
// The index is immutable after construction: any number of goroutines
// may query it concurrently without locking. Rebuild (after mutating
// the underlying collection) is the one exception and must not overlap
// with in-flight queries.
//
// # Index Selection
//
// The KD-tree pays an O(N log N) build for logarithmic queries. Below
// a few thousand points the flat index (index/flat) is usually faster
// end to end and returns identical results.
package kdgo
