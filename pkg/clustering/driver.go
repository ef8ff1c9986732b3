package clustering

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-clustering/pkg/graph"
	"github.com/dd0wney/cluso-clustering/pkg/logging"
	"github.com/dd0wney/cluso-clustering/pkg/metrics"
)

// Counter is the batch driver: it applies one counting strategy to an ordered
// vertex sequence and returns results aligned to the request order. Marker
// tables are allocated lazily and reused across batches as long as the graph
// size does not change, so repeated calls against the same graph pay the
// allocation once.
//
// A Counter is not safe for concurrent use; the marker table is shared
// mutable state between the two passes of every vertex computation. Use
// ParallelCounter for fan-out across vertices.
type Counter struct {
	strategy Strategy
	stamps   StampTable
	flags    FlagTable
	logger   logging.Logger
	metrics  *metrics.Registry

	// stampEpoch is the mark written into the retained stamp table. It
	// only ever increases, so marks left by earlier batches can never
	// match a later vertex even if the counter moves to a different
	// graph of the same size. The flag table needs no such guard: every
	// batch leaves it all-false.
	stampEpoch int
}

// NewCounter creates a batch driver from a validated configuration.
func NewCounter(cfg Config) (*Counter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	return &Counter{
		strategy: strategy,
		logger:   logging.NewNopLogger(),
	}, nil
}

// SetLogger attaches a logger. The default discards all output.
func (c *Counter) SetLogger(logger logging.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetMetrics attaches a metrics registry. Without one, nothing is recorded.
func (c *Counter) SetMetrics(registry *metrics.Registry) {
	c.metrics = registry
}

// Strategy returns the configured counting strategy.
func (c *Counter) Strategy() Strategy {
	return c.strategy
}

// CountVertex counts triangles at a single vertex.
func (c *Counter) CountVertex(g graph.Graph, v int) (Result, error) {
	switch c.strategy {
	case StrategyNaive:
		return CountVertexNaive(g, v)
	case StrategyStamp:
		c.ensureStamps(g)
		c.stampEpoch++
		return countVertexStampMark(g, v, c.stamps, c.stampEpoch)
	case StrategyFlag:
		c.ensureFlags(g)
		result, err := CountVertexFlag(g, v, c.flags)
		if err == nil {
			c.flags.Clear(g, v)
		}
		return result, err
	default:
		return Result{}, &CountError{Op: "CountVertex", Vertex: -1, Cause: ErrUnknownStrategy}
	}
}

// Count counts triangles for every vertex in the request, in request order.
// The whole batch fails atomically on the first invalid vertex; no partial
// results are returned.
func (c *Counter) Count(g graph.Graph, vertices []int) (*BatchResult, error) {
	start := time.Now()
	batchID := uuid.New().String()
	c.logger.Debug("counting batch started",
		logging.BatchID(batchID),
		logging.StrategyName(c.strategy.String()),
		logging.VertexCount(len(vertices)),
		logging.Bool("directed", g.Directed()))

	if err := validateVertices("Count", g, vertices); err != nil {
		c.recordBatch("error", start, vertices, nil)
		c.logger.Error("counting batch rejected", logging.BatchID(batchID), logging.Error(err))
		return nil, err
	}

	var result *BatchResult
	var err error
	switch c.strategy {
	case StrategyNaive:
		result, err = countBatch(g, vertices, CountVertexNaive)
	case StrategyStamp:
		c.ensureStamps(g)
		result, err = countBatch(g, vertices, func(g graph.Graph, v int) (Result, error) {
			c.stampEpoch++
			return countVertexStampMark(g, v, c.stamps, c.stampEpoch)
		})
	case StrategyFlag:
		c.ensureFlags(g)
		result, err = CountWithFlagTable(g, vertices, c.flags)
	default:
		err = &CountError{Op: "Count", Vertex: -1, Cause: ErrUnknownStrategy}
	}
	if err != nil {
		c.recordBatch("error", start, vertices, nil)
		c.logger.Error("counting batch failed", logging.BatchID(batchID), logging.Error(err))
		return nil, err
	}

	c.recordBatch("success", start, vertices, result)
	c.logger.Info("counting batch finished",
		logging.BatchID(batchID),
		logging.StrategyName(c.strategy.String()),
		logging.VertexCount(len(vertices)),
		logging.TriangleCount(totalTriangles(result)),
		logging.Latency(time.Since(start)))
	return result, nil
}

// CountAll counts triangles for every vertex in the graph's natural order.
func (c *Counter) CountAll(g graph.Graph) (*BatchResult, error) {
	vertices := make([]int, g.VertexCount())
	for i := range vertices {
		vertices[i] = i
	}
	return c.Count(g, vertices)
}

func (c *Counter) ensureStamps(g graph.Graph) {
	if len(c.stamps) != g.VertexCount() {
		c.stamps = NewStampTable(g.VertexCount())
	}
}

func (c *Counter) ensureFlags(g graph.Graph) {
	if len(c.flags) != g.VertexCount() {
		c.flags = NewFlagTable(g.VertexCount())
	}
}

func (c *Counter) recordBatch(status string, start time.Time, vertices []int, result *BatchResult) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordBatch(c.strategy.String(), status, time.Since(start), len(vertices), totalTriangles(result))
}

// CountWithStampTable counts the requested vertices using a caller-provided
// stamp table, avoiding repeated allocation across many batch calls against
// the same graph. The table must come from NewStampTable (or a previous
// counting pass over the same graph) and match the graph's vertex count;
// reusing it against a different graph requires a fresh table, since its
// stale stamps are vertex IDs that the other graph may revisit.
func CountWithStampTable(g graph.Graph, vertices []int, stamps StampTable) (*BatchResult, error) {
	if len(stamps) != g.VertexCount() {
		return nil, tableSizeError("CountWithStampTable", len(stamps), g.VertexCount())
	}
	if err := validateVertices("CountWithStampTable", g, vertices); err != nil {
		return nil, err
	}
	return countBatch(g, vertices, func(g graph.Graph, v int) (Result, error) {
		return CountVertexStamp(g, v, stamps)
	})
}

// CountWithFlagTable counts the requested vertices using a caller-provided
// flag table. The table must be all-false and match the graph's vertex
// count; it is returned to the all-false state when the batch completes.
func CountWithFlagTable(g graph.Graph, vertices []int, flags FlagTable) (*BatchResult, error) {
	if len(flags) != g.VertexCount() {
		return nil, tableSizeError("CountWithFlagTable", len(flags), g.VertexCount())
	}
	if err := validateVertices("CountWithFlagTable", g, vertices); err != nil {
		return nil, err
	}
	return countBatch(g, vertices, func(g graph.Graph, v int) (Result, error) {
		result, err := CountVertexFlag(g, v, flags)
		if err != nil {
			return Result{}, err
		}
		// The reset lives here in the driver loop, not in the per-vertex
		// routine: flags carry no vertex identity, so stale markers from
		// this vertex would over-count the next one.
		flags.Clear(g, v)
		return result, nil
	})
}

// countBatch runs a single-vertex routine over the request in order.
func countBatch(g graph.Graph, vertices []int, countVertex func(graph.Graph, int) (Result, error)) (*BatchResult, error) {
	result := &BatchResult{
		Vertices:          append([]int(nil), vertices...),
		Triangles:         make([]int, len(vertices)),
		PossibleTriangles: make([]int, len(vertices)),
	}
	for i, v := range vertices {
		r, err := countVertex(g, v)
		if err != nil {
			return nil, err
		}
		result.Triangles[i] = r.Triangles
		result.PossibleTriangles[i] = r.PossibleTriangles
	}
	return result, nil
}

// validateVertices rejects the whole batch before any vertex is processed
// if any requested ID falls outside [0, vertexCount).
func validateVertices(op string, g graph.Graph, vertices []int) error {
	n := g.VertexCount()
	for _, v := range vertices {
		if v < 0 || v >= n {
			return invalidVertexError(op, v, n)
		}
	}
	return nil
}

func totalTriangles(result *BatchResult) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, t := range result.Triangles {
		total += t
	}
	return total
}
