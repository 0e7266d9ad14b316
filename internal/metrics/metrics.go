// Package metrics exposes Prometheus collectors for the meter service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// readingsImported counts readings accepted into a series.
	readingsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meter_readings_imported_total",
		Help: "Total number of readings accepted by file type",
	}, []string{"file_type"})

	// readingsDropped counts rows that failed to parse.
	readingsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meter_readings_dropped_total",
		Help: "Total number of reading rows dropped by file type",
	}, []string{"file_type"})

	// imports counts whole imports by source (readings, plans) and result.
	imports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meter_imports_total",
		Help: "Total number of imports by source and result",
	}, []string{"source", "result"})

	// reportDuration tracks report computation and rendering time.
	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meter_report_duration_seconds",
		Help:    "Time taken to build a report by output format",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"format"})

	// plansPerReport tracks how many plans a report evaluates.
	plansPerReport = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meter_report_plans_count",
		Help:    "Number of discount plans evaluated per report",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	// activeSessions is the number of live sessions.
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meter_active_sessions",
		Help: "Number of sessions currently held in memory",
	})

	// sessionsExpired counts sessions removed by the sweeper.
	sessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meter_sessions_expired_total",
		Help: "Total number of sessions removed after their TTL",
	})
)

// Recorder provides methods to record service metrics.
type Recorder struct{}

// NewRecorder creates a new metrics recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordReadingsImport records the outcome of a readings import.
func (m *Recorder) RecordReadingsImport(fileType string, valid, dropped int) {
	readingsImported.WithLabelValues(fileType).Add(float64(valid))
	readingsDropped.WithLabelValues(fileType).Add(float64(dropped))
}

// RecordImport records a whole import attempt.
func (m *Recorder) RecordImport(source string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	imports.WithLabelValues(source, result).Inc()
}

// RecordReport records a report build.
func (m *Recorder) RecordReport(format string, plans int, duration time.Duration) {
	reportDuration.WithLabelValues(format).Observe(duration.Seconds())
	plansPerReport.Observe(float64(plans))
}

// SetActiveSessions sets the live session gauge.
func (m *Recorder) SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// RecordSessionsExpired adds n expired sessions.
func (m *Recorder) RecordSessionsExpired(n int) {
	sessionsExpired.Add(float64(n))
}
