package clustering

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-clustering/pkg/logging"
	"github.com/dd0wney/cluso-clustering/pkg/metrics"
)

// TestCountingPipeline exercises config loading, the batch driver, logging,
// metrics and coefficient derivation together.
func TestCountingPipeline(t *testing.T) {
	path := writeConfigFile(t, "strategy: flag\nworkers: 2\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	counter, err := NewCounter(cfg)
	require.NoError(t, err)

	var logBuf bytes.Buffer
	counter.SetLogger(logging.NewJSONLogger(&logBuf, logging.DebugLevel))

	registry := metrics.NewRegistry()
	counter.SetMetrics(registry)

	// Two triangles sharing edge 1-2, plus an isolated vertex
	g := buildGraph(t, 5, false, [][2]int{
		{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3},
	})

	result, err := counter.CountAll(g)
	require.NoError(t, err)
	require.Len(t, result.Triangles, 5)

	assert.Equal(t, []int{1, 2, 2, 1, 0}, result.Triangles)
	assert.Equal(t, []int{1, 3, 3, 1, 0}, result.PossibleTriangles)

	coefficients := Coefficients(result)
	assert.InDelta(t, 1.0, coefficients[0], 1e-9)
	assert.InDelta(t, 2.0/3.0, coefficients[1], 1e-9)
	assert.InDelta(t, 0.0, coefficients[4], 1e-9)

	summary := Summarize(result)
	assert.Greater(t, summary.Mean, 0.0)
	assert.Equal(t, 0.0, summary.Min)
	assert.Equal(t, 1.0, summary.Max)

	// Metrics recorded one successful flag batch with 6 per-vertex triangles
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.CountOperationsTotal.WithLabelValues("flag", "success")))
	assert.Equal(t, 6.0, testutil.ToFloat64(registry.TrianglesFoundTotal))

	// Structured logs came out as one JSON object per line
	lines := bytes.Split(bytes.TrimSpace(logBuf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry logging.LogEntry
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "counting batch finished", entry.Message)
	assert.Equal(t, "flag", entry.Fields["strategy"])

	// A failed batch is counted with error status and no partial output
	_, err = counter.Count(g, []int{0, 17})
	require.ErrorIs(t, err, ErrInvalidVertex)
	assert.Equal(t, 1.0, testutil.ToFloat64(registry.CountOperationsTotal.WithLabelValues("flag", "error")))
}
