package clustering

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Coefficients derives local clustering coefficients from a batch result,
// index-aligned with the result's vertex order. Vertices with no possible
// triangle (degree ≤ 1) get a coefficient of 0.
func Coefficients(result *BatchResult) []float64 {
	coefficients := make([]float64, len(result.Triangles))
	for i, possible := range result.PossibleTriangles {
		if possible == 0 {
			continue
		}
		coefficients[i] = float64(result.Triangles[i]) / float64(possible)
	}
	return coefficients
}

// CoefficientSummary describes the distribution of local clustering
// coefficients across a batch.
type CoefficientSummary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes distribution statistics over a batch's local clustering
// coefficients. Returns the zero summary for an empty batch.
func Summarize(result *BatchResult) CoefficientSummary {
	coefficients := Coefficients(result)
	if len(coefficients) == 0 {
		return CoefficientSummary{}
	}

	sorted := append([]float64(nil), coefficients...)
	sort.Float64s(sorted)

	return CoefficientSummary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
