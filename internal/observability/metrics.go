// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Pipeline metrics
	FilesParsed     *prometheus.CounterVec // by format
	FilesSkipped    prometheus.Counter
	RowsExtracted   prometheus.Counter
	PointsProjected *prometheus.CounterVec // by metric
	ParseDuration   *prometheus.HistogramVec
	BatchesTotal    prometheus.Counter

	// Archive metrics
	ActivitiesStored prometheus.Counter
	ArchiveErrors    prometheus.Counter

	// Transport metrics
	WSClientsConnected prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "activity_telemetry_lab"
	}

	return &Metrics{
		FilesParsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "files_parsed_total",
			Help:      "Total number of uploaded files parsed by format",
		}, []string{"format"}),
		FilesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "files_skipped_total",
			Help:      "Total number of uploaded files skipped as unsupported or empty",
		}),
		RowsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "rows_extracted_total",
			Help:      "Total number of telemetry rows extracted",
		}),
		PointsProjected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "points_projected_total",
			Help:      "Total number of chart points projected by metric",
		}, []string{"metric"}),
		ParseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "parse_duration_seconds",
			Help:      "Per-file extraction and projection latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		BatchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "batches_total",
			Help:      "Total number of upload batches processed",
		}),

		ActivitiesStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "activities_stored_total",
			Help:      "Total number of uploads archived to storage",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "errors_total",
			Help:      "Total number of archive write failures",
		}),

		WSClientsConnected: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "ws_clients_connected",
			Help:      "Current number of connected WebSocket chart clients",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
