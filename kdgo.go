package kdgo

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/kdgo/index"
	"github.com/hupe1980/kdgo/index/kdtree"
	"golang.org/x/sync/errgroup"
)

// SearchResult represents a single query match.
type SearchResult = index.SearchResult

// KDGo is a KD-tree point-cloud index with logging and metrics around
// the core query operations.
//
// KDGo holds a non-owning reference to the adaptor: the adapted point
// collection must outlive the index, and mutating it invalidates the
// index until Rebuild is called.
type KDGo[A index.Adaptor] struct {
	rebuildMu sync.Mutex // Serializes Rebuild calls only; see Rebuild.
	tree      *kdtree.Tree[A]
	logger    *Logger
	metrics   MetricsCollector
	batchSize int
}

// New creates an index of the given dimensionality over the adaptor
// and builds it immediately.
func New[A index.Adaptor](dim int, adaptor A, optFns ...Option) (*KDGo[A], error) {
	opts := options{
		leafSize:  kdtree.DefaultOptions.LeafSize,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
		batchSize: defaultBatchConcurrency,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()

	tree, err := kdtree.New(dim, adaptor, func(o *kdtree.Options) {
		o.LeafSize = opts.leafSize
	})

	opts.logger.LogBuild(context.Background(), adaptor.Len(), dim, time.Since(start), err)
	opts.metrics.RecordBuild(adaptor.Len(), time.Since(start), err)

	if err != nil {
		return nil, translateError(err)
	}

	return &KDGo[A]{
		tree:      tree,
		logger:    opts.logger,
		metrics:   opts.metrics,
		batchSize: opts.batchSize,
	}, nil
}

// Len returns the number of indexed points.
func (kd *KDGo[A]) Len() int { return kd.tree.Len() }

// Dim returns the index dimensionality.
func (kd *KDGo[A]) Dim() int { return kd.tree.Dim() }

// Stats returns the shape of the underlying tree.
func (kd *KDGo[A]) Stats() kdtree.Stats { return kd.tree.Stats() }

// KNNSearch returns the k nearest points to q, sorted ascending by
// squared L2 distance. k <= 0 yields an empty result. The query runs
// to completion; ctx is used for logging only.
func (kd *KDGo[A]) KNNSearch(ctx context.Context, q []float32, k int, optFns ...func(o *kdtree.SearchOptions)) ([]SearchResult, error) {
	start := time.Now()

	results, err := kd.tree.KNNSearch(q, k, optFns...)

	kd.logger.LogSearch(ctx, k, len(results), err)
	kd.metrics.RecordSearch(k, time.Since(start), err)

	return results, translateError(err)
}

// RadiusSearch returns every point within the given squared L2 radius
// of q (inclusive). A negative radius yields an empty result.
func (kd *KDGo[A]) RadiusSearch(ctx context.Context, q []float32, radiusSq float32, optFns ...func(o *kdtree.SearchOptions)) ([]SearchResult, error) {
	start := time.Now()

	results, err := kd.tree.RadiusSearch(q, radiusSq, optFns...)

	kd.logger.LogRadiusSearch(ctx, radiusSq, len(results), err)
	kd.metrics.RecordRadiusSearch(time.Since(start), err)

	return results, translateError(err)
}

// BatchKNNSearch runs one KNN query per entry of queries concurrently
// and returns the per-query results in input order. Concurrent reads
// are safe because the index is immutable; the fan-out width is
// bounded by WithBatchConcurrency.
func (kd *KDGo[A]) BatchKNNSearch(ctx context.Context, queries [][]float32, k int, optFns ...func(o *kdtree.SearchOptions)) ([][]SearchResult, error) {
	start := time.Now()

	results := make([][]SearchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(kd.batchSize)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := kd.tree.KNNSearch(q, k, optFns...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	err := g.Wait()

	kd.logger.LogBatchSearch(ctx, len(queries), k, err)
	kd.metrics.RecordBatchSearch(len(queries), time.Since(start), err)

	if err != nil {
		return nil, translateError(err)
	}

	return results, nil
}

// Rebuild rebuilds the tree against the adaptor's current contents,
// picking up external mutation of the point collection. Rebuild
// serializes against other Rebuild calls but NOT against queries: the
// caller must guarantee no query is in flight, or swap in a freshly
// built index instead.
func (kd *KDGo[A]) Rebuild(ctx context.Context) {
	kd.rebuildMu.Lock()
	defer kd.rebuildMu.Unlock()

	start := time.Now()
	kd.tree.Rebuild()

	kd.logger.LogRebuild(ctx, kd.tree.Len(), time.Since(start))
	kd.metrics.RecordBuild(kd.tree.Len(), time.Since(start), nil)
}
