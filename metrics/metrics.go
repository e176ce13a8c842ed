// Package metrics exposes Prometheus collectors for the planning service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve measures solver runs and plan cache lookups.
// Implements i.SolveRecorder.
type Solve struct {
	// duration measures wall time of a single solve.
	// Labels: algorithm
	duration *prometheus.HistogramVec

	// iterations tracks the iteration count reported by the solvers.
	// Labels: algorithm
	iterations *prometheus.HistogramVec

	// cacheLookups counts plan cache lookups.
	// Labels: hit (true, false)
	cacheLookups *prometheus.CounterVec
}

// NewSolve registers the solve collectors with reg.
func NewSolve(reg prometheus.Registerer) *Solve {
	factory := promauto.With(reg)
	return &Solve{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vinom_planner",
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Time spent solving a maze in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"algorithm"}),
		iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vinom_planner",
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Number of utility estimates produced by a solve",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"algorithm"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vinom_planner",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total plan cache lookups",
		}, []string{"hit"}),
	}
}

// ObserveSolve records one finished solve.
func (s *Solve) ObserveSolve(algorithm string, elapsed time.Duration, iterations int) {
	s.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	s.iterations.WithLabelValues(algorithm).Observe(float64(iterations))
}

// CacheLookup records a plan cache lookup.
func (s *Solve) CacheLookup(hit bool) {
	s.cacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
