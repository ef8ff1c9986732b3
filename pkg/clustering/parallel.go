package clustering

import (
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-clustering/pkg/graph"
	"github.com/dd0wney/cluso-clustering/pkg/logging"
	"github.com/dd0wney/cluso-clustering/pkg/metrics"
	"github.com/dd0wney/cluso-clustering/pkg/parallel"
)

// ParallelCounter fans a batch out across worker goroutines. Vertices are
// independent computations over the immutable graph, so the request is
// split into contiguous chunks and each worker counts its chunk with a
// private marker table; results land in pre-sized slices at their request
// index, so output order still matches input order.
type ParallelCounter struct {
	strategy Strategy
	workers  int
	logger   logging.Logger
	metrics  *metrics.Registry
}

// NewParallelCounter creates a parallel batch driver. A worker count of zero
// selects runtime.NumCPU().
func NewParallelCounter(cfg Config) (*ParallelCounter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelCounter{
		strategy: strategy,
		workers:  workers,
		logger:   logging.NewNopLogger(),
	}, nil
}

// SetLogger attaches a logger. The default discards all output.
func (pc *ParallelCounter) SetLogger(logger logging.Logger) {
	if logger != nil {
		pc.logger = logger
	}
}

// SetMetrics attaches a metrics registry. Without one, nothing is recorded.
func (pc *ParallelCounter) SetMetrics(registry *metrics.Registry) {
	pc.metrics = registry
}

// Count counts triangles for every vertex in the request, in request order.
// Validation and failure semantics match Counter.Count: the batch fails
// atomically before any work starts if a vertex is out of range.
func (pc *ParallelCounter) Count(g graph.Graph, vertices []int) (*BatchResult, error) {
	start := time.Now()
	batchID := uuid.New().String()

	if err := validateVertices("Count", g, vertices); err != nil {
		pc.logger.Error("parallel counting batch rejected", logging.BatchID(batchID), logging.Error(err))
		pc.record("error", start, len(vertices), nil)
		return nil, err
	}

	result := &BatchResult{
		Vertices:          append([]int(nil), vertices...),
		Triangles:         make([]int, len(vertices)),
		PossibleTriangles: make([]int, len(vertices)),
	}

	workers := pc.workers
	if workers > len(vertices) {
		workers = len(vertices)
	}
	if workers <= 1 {
		if err := pc.countChunk(g, vertices, 0, len(vertices), result); err != nil {
			pc.fail(batchID, start, len(vertices), err)
			return nil, err
		}
	} else {
		pool, err := parallel.NewPool(workers)
		if err != nil {
			err = &CountError{Op: "Count", Vertex: -1, Cause: err}
			pc.fail(batchID, start, len(vertices), err)
			return nil, err
		}
		defer pool.Close()

		var wg sync.WaitGroup
		errs := make([]error, workers)
		chunkSize := (len(vertices) + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * chunkSize
			hi := lo + chunkSize
			if hi > len(vertices) {
				hi = len(vertices)
			}
			if lo >= hi {
				break
			}
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				errs[w] = pc.countChunk(g, vertices, lo, hi, result)
			})
		}
		wg.Wait()
		if err := pool.Err(); err != nil {
			err = &CountError{Op: "Count", Vertex: -1, Cause: err}
			pc.fail(batchID, start, len(vertices), err)
			return nil, err
		}
		for _, err := range errs {
			if err != nil {
				pc.fail(batchID, start, len(vertices), err)
				return nil, err
			}
		}
	}

	pc.logger.Info("parallel counting batch finished",
		logging.BatchID(batchID),
		logging.StrategyName(pc.strategy.String()),
		logging.VertexCount(len(vertices)),
		logging.Int("workers", workers),
		logging.TriangleCount(totalTriangles(result)),
		logging.Latency(time.Since(start)))
	pc.record("success", start, len(vertices), result)
	return result, nil
}

// fail logs a batch failure and records its error outcome, mirroring the
// sequential driver's error paths.
func (pc *ParallelCounter) fail(batchID string, start time.Time, vertices int, err error) {
	pc.logger.Error("parallel counting batch failed", logging.BatchID(batchID), logging.Error(err))
	pc.record("error", start, vertices, nil)
}

func (pc *ParallelCounter) record(status string, start time.Time, vertices int, result *BatchResult) {
	if pc.metrics == nil {
		return
	}
	pc.metrics.RecordBatch(pc.strategy.String(), status, time.Since(start), vertices, totalTriangles(result))
}

// CountAll counts triangles for every vertex in the graph's natural order.
func (pc *ParallelCounter) CountAll(g graph.Graph) (*BatchResult, error) {
	vertices := make([]int, g.VertexCount())
	for i := range vertices {
		vertices[i] = i
	}
	return pc.Count(g, vertices)
}

// countChunk counts vertices[lo:hi] with marker storage private to the
// calling worker, writing results at their request indices. Disjoint chunks
// touch disjoint result cells, so no locking is needed.
func (pc *ParallelCounter) countChunk(g graph.Graph, vertices []int, lo, hi int, result *BatchResult) error {
	var countVertex func(graph.Graph, int) (Result, error)
	switch pc.strategy {
	case StrategyNaive:
		countVertex = CountVertexNaive
	case StrategyStamp:
		stamps := NewStampTable(g.VertexCount())
		countVertex = func(g graph.Graph, v int) (Result, error) {
			return CountVertexStamp(g, v, stamps)
		}
	case StrategyFlag:
		flags := NewFlagTable(g.VertexCount())
		countVertex = func(g graph.Graph, v int) (Result, error) {
			r, err := CountVertexFlag(g, v, flags)
			if err != nil {
				return Result{}, err
			}
			flags.Clear(g, v)
			return r, nil
		}
	default:
		return &CountError{Op: "Count", Vertex: -1, Cause: ErrUnknownStrategy}
	}

	for i := lo; i < hi; i++ {
		r, err := countVertex(g, vertices[i])
		if err != nil {
			return err
		}
		result.Triangles[i] = r.Triangles
		result.PossibleTriangles[i] = r.PossibleTriangles
	}
	return nil
}
