package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authoringOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authoring_operations_total",
			Help: "Total authoring operations by outcome",
		},
		[]string{"operation", "status"},
	)

	autosaveRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_autosave_total",
			Help: "Total autosave flushes by outcome",
		},
		[]string{"status"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_generation_duration_seconds",
			Help:    "Duration of AI content generation calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"operation"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "authoring_sessions_active",
			Help: "Current number of live authoring sessions",
		},
	)

	automationDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_dispatch_total",
			Help: "Total post-publish automation dispatches by outcome",
		},
		[]string{"automation_type", "status"},
	)
)

type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// TrackOperation records one authoring operation outcome. Safe to call
// on a nil monitor so tests can construct services without one.
func (m *Monitor) TrackOperation(operation, status string) {
	if m == nil {
		return
	}
	authoringOperations.WithLabelValues(operation, status).Inc()
}

func (m *Monitor) TrackAutosave(status string) {
	if m == nil {
		return
	}
	autosaveRuns.WithLabelValues(status).Inc()
}

func (m *Monitor) ObserveGeneration(operation string, d time.Duration) {
	if m == nil {
		return
	}
	generationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Monitor) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	activeSessions.Set(float64(n))
}

func (m *Monitor) TrackAutomation(automationType, status string) {
	if m == nil {
		return
	}
	automationDispatches.WithLabelValues(automationType, status).Inc()
}
