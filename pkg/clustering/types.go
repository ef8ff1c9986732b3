package clustering

import (
	"fmt"

	"github.com/dd0wney/cluso-clustering/pkg/graph"
)

// Result holds the per-vertex counting output: the number of closed triples
// touching the vertex and the number of neighbor pairs that could close one.
// The local clustering coefficient is Triangles / PossibleTriangles.
type Result struct {
	Triangles         int
	PossibleTriangles int
}

// BatchResult holds counting output for an ordered vertex sequence. The three
// slices are index-aligned with each other and with the request order, which
// is preserved regardless of strategy.
type BatchResult struct {
	Vertices          []int
	Triangles         []int
	PossibleTriangles []int
}

// Strategy selects one of the interchangeable counting algorithms. All three
// produce identical results and differ only in auxiliary storage.
type Strategy int

const (
	// StrategyNaive tests every ordered neighbor pair with the graph's edge
	// lookup. No auxiliary storage.
	StrategyNaive Strategy = iota
	// StrategyStamp marks neighbors in a shared integer table stamped with
	// the current vertex ID, so no reset between vertices is needed.
	StrategyStamp
	// StrategyFlag marks neighbors in a boolean table, denser than stamps
	// but requiring an explicit per-vertex reset in the batch driver.
	StrategyFlag
)

// AllStrategies lists every available counting strategy.
var AllStrategies = []Strategy{StrategyNaive, StrategyStamp, StrategyFlag}

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategyStamp:
		return "stamp"
	case StrategyFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a strategy name to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "naive":
		return StrategyNaive, nil
	case "stamp":
		return StrategyStamp, nil
	case "flag":
		return StrategyFlag, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// noStamp is the sentinel stored in fresh stamp table cells. Vertex IDs are
// dense in [0, vertexCount), so a negative value can never match one.
const noStamp = -1

// StampTable is the auxiliary storage for StrategyStamp: one integer cell per
// vertex, where a cell "matches" vertex v iff it holds v's ID. Tables must be
// created through NewStampTable so that unwritten cells hold the sentinel
// rather than a valid vertex ID.
type StampTable []int

// NewStampTable creates a stamp table for a graph with vertexCount vertices.
func NewStampTable(vertexCount int) StampTable {
	t := make(StampTable, vertexCount)
	for i := range t {
		t[i] = noStamp
	}
	return t
}

// FlagTable is the auxiliary storage for StrategyFlag: one boolean cell per
// vertex. The counting routine leaves the processed vertex's neighbor cells
// set; the batch driver clears them before the next vertex.
type FlagTable []bool

// NewFlagTable creates an all-false flag table for a graph with vertexCount
// vertices.
func NewFlagTable(vertexCount int) FlagTable {
	return make(FlagTable, vertexCount)
}

// Clear resets the cells set while counting vertex v. This is O(degree(v)),
// not O(vertexCount), which keeps the flag strategy's complexity advantage.
func (t FlagTable) Clear(g graph.Graph, v int) {
	for _, u := range g.Neighbors(v) {
		t[u] = false
	}
}
