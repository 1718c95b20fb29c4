package observability

import (
	"time"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the solver's Prometheus collectors.
type Metrics struct {
	SearchesTotal  *prometheus.CounterVec
	FramesStepped  prometheus.Counter
	TrialsPlayed   prometheus.Counter
	NodesExplored  prometheus.Counter
	SearchDuration prometheus.Histogram
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "macroforge",
			Name:      "searches_total",
			Help:      "Completed searches by outcome.",
		}, []string{"outcome"}),
		FramesStepped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "macroforge",
			Name:      "frames_stepped_total",
			Help:      "Simulation frames stepped across all searches.",
		}),
		TrialsPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "macroforge",
			Name:      "trials_played_total",
			Help:      "Randomized trials played across all searches.",
		}),
		NodesExplored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "macroforge",
			Name:      "nodes_explored_total",
			Help:      "Backtracking tree nodes explored across all searches.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "macroforge",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of completed searches.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
	reg.MustRegister(m.SearchesTotal, m.FramesStepped, m.TrialsPlayed, m.NodesExplored, m.SearchDuration)
	return m
}

// ObserveSearch records one terminal outcome and its stats.
func (m *Metrics) ObserveSearch(outcome domain.Outcome, elapsed time.Duration) {
	label := "found"
	if !outcome.IsFound() {
		label = string(outcome.Reason)
	}
	m.SearchesTotal.WithLabelValues(label).Inc()
	m.FramesStepped.Add(float64(outcome.Stats.FramesStepped))
	m.TrialsPlayed.Add(float64(outcome.Stats.Trials))
	m.NodesExplored.Add(float64(outcome.Stats.NodesExplored))
	m.SearchDuration.Observe(elapsed.Seconds())
}
