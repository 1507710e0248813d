// Package metrics exposes Prometheus instrumentation for monitoring runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the namespace for all monitor metrics.
	Namespace = "seo_monitor"
)

// Probe outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors for runs, probes and alerts.
// All methods are safe on a nil receiver.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDurationSeconds *prometheus.HistogramVec
	RunsInProgress     prometheus.Gauge

	ProbesTotal          *prometheus.CounterVec
	ProbeDurationSeconds *prometheus.HistogramVec

	AlertsTotal          *prometheus.CounterVec
	BacklinkChangesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg, or on the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}
	m.initRunMetrics(factory)
	m.initProbeMetrics(factory)
	m.initAlertMetrics(factory)
	return m
}

func (m *Metrics) initRunMetrics(factory promauto.Factory) {
	m.RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "runs",
			Name:      "total",
			Help:      "Monitoring runs by type and final status",
		},
		[]string{"type", "status"},
	)

	m.RunDurationSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "runs",
			Name:      "duration_seconds",
			Help:      "Duration of monitoring runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16), // 1s to ~9h
		},
		[]string{"type"},
	)

	m.RunsInProgress = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "runs",
			Name:      "in_progress",
			Help:      "Number of monitoring runs currently executing",
		},
	)
}

func (m *Metrics) initProbeMetrics(factory promauto.Factory) {
	m.ProbesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "probes",
			Name:      "total",
			Help:      "Probe executions by probe and outcome",
		},
		[]string{"probe", "outcome"},
	)

	m.ProbeDurationSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "probes",
			Name:      "duration_seconds",
			Help:      "Duration of a single probe in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"probe"},
	)
}

func (m *Metrics) initAlertMetrics(factory promauto.Factory) {
	m.AlertsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "alerts",
			Name:      "created_total",
			Help:      "Alerts created by type and severity",
		},
		[]string{"type", "severity"},
	)

	m.BacklinkChangesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "backlinks",
			Name:      "changes_total",
			Help:      "Backlink transitions detected by kind",
		},
		[]string{"change"},
	)
}

// RunStarted marks a run as in progress.
func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.RunsInProgress.Inc()
}

// RunFinished records a finished run.
func (m *Metrics) RunFinished(runType, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RunsInProgress.Dec()
	m.RunsTotal.WithLabelValues(runType, status).Inc()
	m.RunDurationSeconds.WithLabelValues(runType).Observe(elapsed.Seconds())
}

// ObserveProbe records one probe execution.
func (m *Metrics) ObserveProbe(probe, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProbesTotal.WithLabelValues(probe, outcome).Inc()
	m.ProbeDurationSeconds.WithLabelValues(probe).Observe(elapsed.Seconds())
}

// AlertCreated counts a persisted alert.
func (m *Metrics) AlertCreated(alertType, severity string) {
	if m == nil {
		return
	}
	m.AlertsTotal.WithLabelValues(alertType, severity).Inc()
}

// BacklinkChanges counts new and lost backlinks from one reconciliation.
func (m *Metrics) BacklinkChanges(added, lost int) {
	if m == nil {
		return
	}
	m.BacklinkChangesTotal.WithLabelValues("new").Add(float64(added))
	m.BacklinkChangesTotal.WithLabelValues("lost").Add(float64(lost))
}
