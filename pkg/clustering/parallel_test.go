package clustering

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dd0wney/cluso-clustering/pkg/metrics"
)

func newTestParallelCounter(t *testing.T, strategy Strategy, workers int) *ParallelCounter {
	t.Helper()
	pc, err := NewParallelCounter(Config{Strategy: strategy.String(), Workers: workers})
	if err != nil {
		t.Fatalf("NewParallelCounter(%s) failed: %v", strategy, err)
	}
	return pc
}

func TestParallelMatchesSequential(t *testing.T) {
	g := randomGraph(200, false, 12345)

	vertices := make([]int, 200)
	for i := range vertices {
		vertices[i] = i
	}

	reference, err := newTestCounter(t, StrategyNaive).Count(g, vertices)
	if err != nil {
		t.Fatalf("Sequential naive count failed: %v", err)
	}

	for _, strategy := range AllStrategies {
		for _, workers := range []int{1, 2, 7} {
			result, err := newTestParallelCounter(t, strategy, workers).Count(g, vertices)
			if err != nil {
				t.Fatalf("%s/%d workers: Count failed: %v", strategy, workers, err)
			}
			for i := range vertices {
				if result.Triangles[i] != reference.Triangles[i] {
					t.Fatalf("%s/%d workers: vertex %d triangles %d, sequential %d",
						strategy, workers, vertices[i], result.Triangles[i], reference.Triangles[i])
				}
			}
		}
	}
}

func TestParallelPreservesRequestOrder(t *testing.T) {
	g := buildGraph(t, 10, false, testEdges)
	vertices := []int{9, 2, 5, 0, 7, 1}

	result, err := newTestParallelCounter(t, StrategyStamp, 3).Count(g, vertices)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	for i, v := range vertices {
		if result.Vertices[i] != v {
			t.Errorf("Index %d: expected vertex %d, got %d", i, v, result.Vertices[i])
		}
	}
}

func TestParallelFailsAtomically(t *testing.T) {
	g := buildGraph(t, 10, false, testEdges)

	result, err := newTestParallelCounter(t, StrategyFlag, 4).Count(g, []int{0, 99})
	if !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("Expected ErrInvalidVertex, got %v", err)
	}
	if result != nil {
		t.Error("Expected no partial result")
	}
}

func TestParallelCountAll(t *testing.T) {
	g := buildGraph(t, 4, false, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}})

	result, err := newTestParallelCounter(t, StrategyFlag, 2).CountAll(g)
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	expected := []int{1, 1, 1, 0}
	for i, want := range expected {
		if result.Triangles[i] != want {
			t.Errorf("Vertex %d: expected %d triangles, got %d", i, want, result.Triangles[i])
		}
	}
}

// faultyGraph reports a valid vertex set but fails adjacency enumeration,
// simulating a graph backend breaking mid-batch.
type faultyGraph struct{ vertices int }

func (f faultyGraph) VertexCount() int    { return f.vertices }
func (faultyGraph) Degree(int) int        { return 0 }
func (faultyGraph) Neighbors(int) []int   { panic("adjacency unavailable") }
func (faultyGraph) HasEdge(int, int) bool { return false }
func (faultyGraph) Directed() bool        { return false }

func TestParallelRecordsErrorOutcome(t *testing.T) {
	registry := metrics.NewRegistry()

	pc := newTestParallelCounter(t, StrategyNaive, 2)
	pc.SetMetrics(registry)

	// Rejected batch: invalid vertex
	if _, err := pc.Count(buildGraph(t, 3, false, nil), []int{0, 9}); !errors.Is(err, ErrInvalidVertex) {
		t.Fatalf("Expected ErrInvalidVertex, got %v", err)
	}

	// Aborted batch: workers hit a failing graph backend
	if _, err := pc.Count(faultyGraph{vertices: 4}, []int{0, 1, 2, 3}); err == nil {
		t.Fatal("Expected error from failing graph backend")
	}

	if got := testutil.ToFloat64(registry.CountOperationsTotal.WithLabelValues("naive", "error")); got != 2 {
		t.Errorf("Expected 2 error outcomes recorded, got %f", got)
	}
	if got := testutil.ToFloat64(registry.CountOperationsTotal.WithLabelValues("naive", "success")); got != 0 {
		t.Errorf("Expected no success outcomes recorded, got %f", got)
	}
}

func TestParallelEmptyBatch(t *testing.T) {
	g := buildGraph(t, 3, false, [][2]int{{0, 1}})

	result, err := newTestParallelCounter(t, StrategyStamp, 4).Count(g, []int{})
	if err != nil {
		t.Fatalf("Empty batch failed: %v", err)
	}
	if len(result.Triangles) != 0 {
		t.Errorf("Expected empty result, got %d entries", len(result.Triangles))
	}
}
