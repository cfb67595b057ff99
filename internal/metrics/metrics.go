// Package metrics exposes Prometheus instruments for optimization runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agriplan/cropalloc/pkg/core"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cropalloc",
			Subsystem: "planner",
			Name:      "runs_total",
			Help:      "Optimization runs by final status.",
		},
		[]string{"status"},
	)

	solveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cropalloc",
			Subsystem: "planner",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of formulation plus solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, solveDuration)
}

// ObserveRun records the outcome and duration of one optimization run.
func ObserveRun(status core.SolveStatus, elapsed time.Duration) {
	runsTotal.WithLabelValues(string(status)).Inc()
	solveDuration.Observe(elapsed.Seconds())
}
