package featured

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Assignment outcomes.
const (
	OutcomeContent  = "content"
	OutcomeFallback = "fallback"
	OutcomeNone     = "none"
	OutcomeSkipped  = "skipped"
)

var (
	assignments     *prometheus.CounterVec
	assignmentsOnce sync.Once
)

func assignmentCounter() *prometheus.CounterVec {
	assignmentsOnce.Do(func() {
		assignments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auto_featured_assignments_total",
			Help: "Save hook decisions by outcome",
		}, []string{"outcome"})

		prometheus.MustRegister(assignments)
	})

	return assignments
}
