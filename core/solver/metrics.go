package solver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prodflow/jobshop/core/model"
)

var (
	solveDuration *prometheus.HistogramVec
	runsTotal     *prometheus.CounterVec
	searchNodes   prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, prometheus.Counter) {
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobshop_solve_duration_seconds",
			Help:    "Wall-clock time spent in the solver",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobshop_solver_runs_total",
			Help: "Number of solver invocations by outcome",
		},
		[]string{"status"},
	)
	nodes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobshop_search_nodes_total",
			Help: "Number of branch-and-bound nodes explored",
		},
	)
	return dur, runs, nodes
}

func init() {
	solveDuration, runsTotal, searchNodes = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers solver metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(solveDuration, runsTotal, searchNodes)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	solveDuration, runsTotal, searchNodes = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

func observeSolve(status model.Status, elapsed time.Duration, nodes int64) {
	solveDuration.WithLabelValues(status.String()).Observe(elapsed.Seconds())
	runsTotal.WithLabelValues(status.String()).Inc()
	searchNodes.Add(float64(nodes))
}
