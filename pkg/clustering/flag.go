package clustering

import "github.com/dd0wney/cluso-clustering/pkg/graph"

// CountVertexFlag counts triangles at v using a boolean flag table shared
// across a batch. The algorithm is identical to CountVertexStamp, with the
// marker narrowed to one flag per vertex for cache density.
//
// Because flags carry no vertex identity, the routine returns with v's
// neighbor cells still set: the batch driver owns the reset and must call
// FlagTable.Clear(g, v) before counting the next vertex, or stale flags leak
// into its result. Keeping the reset out of this function lets a driver that
// knows it is done with the table skip the final clear.
func CountVertexFlag(g graph.Graph, v int, flags FlagTable) (Result, error) {
	if v < 0 || v >= g.VertexCount() {
		return Result{}, invalidVertexError("CountVertexFlag", v, g.VertexCount())
	}
	if len(flags) != g.VertexCount() {
		return Result{}, tableSizeError("CountVertexFlag", len(flags), g.VertexCount())
	}

	neighbors := g.Neighbors(v)
	k := len(neighbors)
	if k <= 1 {
		return Result{}, nil
	}

	for _, u := range neighbors {
		flags[u] = true
	}

	c := 0
	for _, u := range neighbors {
		for _, w := range g.Neighbors(u) {
			// Self-loops at u or v never contribute
			if w == u || w == v {
				continue
			}
			if flags[w] {
				c++
			}
		}
	}

	return finishCount(g, k, c), nil
}
