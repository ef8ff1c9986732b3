package clustering

import "github.com/dd0wney/cluso-clustering/pkg/graph"

// CountVertexStamp counts triangles at v using a stamp table shared across a
// batch. Pass 1 stamps every neighbor cell with v's ID; pass 2 walks the
// two-hop neighborhood and counts hits on stamped cells, replacing the naive
// strategy's per-pair edge lookups with O(1) array reads.
//
// No reset is needed between vertices: a stale stamp from an earlier vertex
// can never equal the current vertex's ID, and fresh tables hold a negative
// sentinel (see NewStampTable). That argument only covers reuse against one
// graph — a table carried over to a different graph may hold stamps that
// collide with the new graph's vertices, so it needs a fresh table. The
// table must be sized to the graph's vertex count or the call fails with
// ErrInvalidConfiguration.
func CountVertexStamp(g graph.Graph, v int, stamps StampTable) (Result, error) {
	return countVertexStampMark(g, v, stamps, v)
}

// countVertexStampMark is CountVertexStamp with the stamp value decoupled
// from the vertex ID. The batch driver passes a mark that increases
// monotonically across every vertex it ever processes, so a table it retains
// between batches stays valid even when consecutive batches run against
// different graphs: a stale mark can never equal a future one.
func countVertexStampMark(g graph.Graph, v int, stamps StampTable, mark int) (Result, error) {
	if v < 0 || v >= g.VertexCount() {
		return Result{}, invalidVertexError("CountVertexStamp", v, g.VertexCount())
	}
	if len(stamps) != g.VertexCount() {
		return Result{}, tableSizeError("CountVertexStamp", len(stamps), g.VertexCount())
	}

	neighbors := g.Neighbors(v)
	k := len(neighbors)
	if k <= 1 {
		return Result{}, nil
	}

	for _, u := range neighbors {
		stamps[u] = mark
	}

	c := 0
	for _, u := range neighbors {
		for _, w := range g.Neighbors(u) {
			// Self-loops at u or v never contribute
			if w == u || w == v {
				continue
			}
			if stamps[w] == mark {
				c++
			}
		}
	}

	return finishCount(g, k, c), nil
}
