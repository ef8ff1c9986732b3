package graph

import (
	"fmt"
	"sort"
)

// Graph is the read-only adjacency capability consumed by the counting
// algorithms. Vertex identifiers are dense integers in [0, VertexCount()).
// Implementations must not change their vertex set while a counting pass is
// running; neighbor enumeration order must be stable within a single pass.
type Graph interface {
	// VertexCount returns the number of vertices in the graph
	VertexCount() int
	// Degree returns the neighbor count of v (out-degree for directed graphs)
	Degree(v int) int
	// Neighbors returns v's neighbors (out-neighbors for directed graphs).
	// The returned slice is owned by the graph and must not be modified.
	Neighbors(v int) []int
	// HasEdge reports whether an edge from u to v exists
	HasEdge(u, v int) bool
	// Directed reports whether edges have direction
	Directed() bool
}

// Statistics is a snapshot of graph size counters
type Statistics struct {
	VertexCount int
	EdgeCount   uint64
	MaxDegree   int
}

// AdjacencyGraph is an in-memory Graph backed by per-vertex sorted neighbor
// slices. Edge-existence tests are binary searches, so HasEdge costs
// O(log degree). For directed graphs only out-neighbors are stored and
// Degree reports out-degree.
type AdjacencyGraph struct {
	directed  bool
	adj       [][]int
	edgeCount uint64
}

// NewAdjacencyGraph creates a graph with vertexCount vertices and no edges.
// Vertex identifiers are 0 through vertexCount-1.
func NewAdjacencyGraph(vertexCount int, directed bool) (*AdjacencyGraph, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexCount, vertexCount)
	}
	return &AdjacencyGraph{
		directed: directed,
		adj:      make([][]int, vertexCount),
	}, nil
}

// AddEdge inserts an edge from one vertex to another. For undirected graphs
// the reverse edge is inserted as well. Duplicate edges are ignored
// (multi-edges collapse to a single edge) and self-loops are rejected.
func (g *AdjacencyGraph) AddEdge(from, to int) error {
	if !g.validVertex(from) {
		return fmt.Errorf("%w: %d (vertex count %d)", ErrInvalidVertex, from, len(g.adj))
	}
	if !g.validVertex(to) {
		return fmt.Errorf("%w: %d (vertex count %d)", ErrInvalidVertex, to, len(g.adj))
	}
	if from == to {
		return fmt.Errorf("%w: vertex %d", ErrSelfLoop, from)
	}

	inserted := g.insertSorted(from, to)
	if !g.directed {
		g.insertSorted(to, from)
	}
	if inserted {
		g.edgeCount++
	}
	return nil
}

// insertSorted places neighbor into from's sorted adjacency slice.
// Returns false if the edge already existed.
func (g *AdjacencyGraph) insertSorted(from, neighbor int) bool {
	list := g.adj[from]
	i := sort.SearchInts(list, neighbor)
	if i < len(list) && list[i] == neighbor {
		return false
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = neighbor
	g.adj[from] = list
	return true
}

// VertexCount returns the number of vertices
func (g *AdjacencyGraph) VertexCount() int {
	return len(g.adj)
}

// Degree returns the neighbor count of v, or 0 for out-of-range vertices
func (g *AdjacencyGraph) Degree(v int) int {
	if !g.validVertex(v) {
		return 0
	}
	return len(g.adj[v])
}

// Neighbors returns v's sorted neighbor slice. The slice is owned by the
// graph; callers must treat it as read-only.
func (g *AdjacencyGraph) Neighbors(v int) []int {
	if !g.validVertex(v) {
		return nil
	}
	return g.adj[v]
}

// HasEdge reports whether an edge from u to v exists, via binary search
// over u's sorted neighbor slice
func (g *AdjacencyGraph) HasEdge(u, v int) bool {
	if !g.validVertex(u) || !g.validVertex(v) {
		return false
	}
	list := g.adj[u]
	i := sort.SearchInts(list, v)
	return i < len(list) && list[i] == v
}

// Directed reports whether the graph was created with directed semantics
func (g *AdjacencyGraph) Directed() bool {
	return g.directed
}

// EdgeCount returns the number of distinct edges inserted so far.
// Undirected edges count once.
func (g *AdjacencyGraph) EdgeCount() uint64 {
	return g.edgeCount
}

// Stats returns a snapshot of graph size counters
func (g *AdjacencyGraph) Stats() Statistics {
	maxDegree := 0
	for _, list := range g.adj {
		if len(list) > maxDegree {
			maxDegree = len(list)
		}
	}
	return Statistics{
		VertexCount: len(g.adj),
		EdgeCount:   g.edgeCount,
		MaxDegree:   maxDegree,
	}
}

func (g *AdjacencyGraph) validVertex(v int) bool {
	return v >= 0 && v < len(g.adj)
}
