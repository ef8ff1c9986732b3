package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the counting library
type Registry struct {
	// Counting Metrics
	CountOperationsTotal *prometheus.CounterVec
	CountDuration        *prometheus.HistogramVec
	VerticesPerBatch     prometheus.Histogram
	TrianglesFoundTotal  prometheus.Counter

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}
	r.initCountMetrics()
	return r
}

func (r *Registry) initCountMetrics() {
	r.CountOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustering_count_operations_total",
			Help: "Total number of batch counting operations",
		},
		[]string{"strategy", "status"},
	)

	r.CountDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clustering_count_duration_seconds",
			Help:    "Batch counting duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
		[]string{"strategy"},
	)

	r.VerticesPerBatch = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clustering_vertices_per_batch",
			Help:    "Number of vertices processed per batch",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	r.TrianglesFoundTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "clustering_triangles_found_total",
			Help: "Total number of per-vertex triangles counted",
		},
	)
}

// RecordBatch records a batch counting operation
func (r *Registry) RecordBatch(strategy, status string, duration time.Duration, vertices, triangles int) {
	r.CountOperationsTotal.WithLabelValues(strategy, status).Inc()
	r.CountDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	r.VerticesPerBatch.Observe(float64(vertices))
	if triangles > 0 {
		r.TrianglesFoundTotal.Add(float64(triangles))
	}
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler exposing the registry for scraping,
// for embedding applications that serve metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
