package clustering

import "github.com/dd0wney/cluso-clustering/pkg/graph"

// CountVertexNaive counts triangles at v by testing every ordered pair of
// v's neighbors with the graph's edge lookup. Costs O(k² · lookup) where
// k = degree(v); with sorted adjacency the lookup is O(log k). Uses no
// auxiliary storage, making it the reference the marked strategies are
// checked against.
func CountVertexNaive(g graph.Graph, v int) (Result, error) {
	if v < 0 || v >= g.VertexCount() {
		return Result{}, invalidVertexError("CountVertexNaive", v, g.VertexCount())
	}

	neighbors := g.Neighbors(v)
	k := len(neighbors)
	if k <= 1 {
		// A triangle needs two neighbors
		return Result{}, nil
	}

	c := 0
	for i, u := range neighbors {
		for j, w := range neighbors {
			if i == j {
				continue
			}
			if g.HasEdge(u, w) {
				c++
			}
		}
	}

	return finishCount(g, k, c), nil
}

// finishCount applies the orientation rule shared by all strategies. The
// ordered-pair scan sees each undirected neighbor edge twice (and therefore
// each triangle twice), so undirected results are halved; directed results
// are taken as-is. Possible pairs follow the same rule: k(k-1)/2 undirected,
// k(k-1) directed.
func finishCount(g graph.Graph, k, c int) Result {
	if g.Directed() {
		return Result{Triangles: c, PossibleTriangles: k * (k - 1)}
	}
	return Result{Triangles: c / 2, PossibleTriangles: k * (k - 1) / 2}
}
