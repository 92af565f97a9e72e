// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Query metrics
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Org-token metrics
	TokenDecodeFailures prometheus.Counter

	// Snapshot metrics
	SnapshotRefreshes *prometheus.CounterVec
	SnapshotDuration  prometheus.Histogram
	SnapshotEvents    prometheus.Gauge
	SnapshotRows      *prometheus.GaugeVec
	SnapshotLoadedAt  prometheus.Gauge

	// Export metrics
	RowsExported *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "event_insights"
	}

	return &Metrics{
		QueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "queries_total",
			Help:      "Total number of analytics queries by query name and status",
		}, []string{"query", "status"}),
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "query_duration_seconds",
			Help:      "Analytics query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		TokenDecodeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_decode_failures_total",
			Help:      "Total number of org-token decode failures",
		}),
		SnapshotRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "refreshes_total",
			Help:      "Total number of snapshot refreshes by status",
		}, []string{"status"}),
		SnapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "refresh_duration_seconds",
			Help:      "Snapshot refresh duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotEvents: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "events",
			Help:      "Number of events in the current snapshot",
		}),
		SnapshotRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "rows",
			Help:      "Number of rows in the current snapshot by record type",
		}, []string{"record"}),
		SnapshotLoadedAt: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "loaded_at_seconds",
			Help:      "Unix time the current snapshot was loaded",
		}),
		RowsExported: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "rows_total",
			Help:      "Total number of rows exported to the warehouse by record type",
		}, []string{"record"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordQuery records one analytics query.
func RecordQuery(query, status string, seconds float64) {
	DefaultMetrics.QueriesTotal.WithLabelValues(query, status).Inc()
	DefaultMetrics.QueryDuration.WithLabelValues(query).Observe(seconds)
}

// RecordTokenDecodeFailure increments the token decode failure counter.
func RecordTokenDecodeFailure() {
	DefaultMetrics.TokenDecodeFailures.Inc()
}

// RecordSnapshotRefresh records a snapshot refresh attempt.
func RecordSnapshotRefresh(status string, durationSeconds float64) {
	DefaultMetrics.SnapshotRefreshes.WithLabelValues(status).Inc()
	DefaultMetrics.SnapshotDuration.Observe(durationSeconds)
}

// UpdateSnapshotStats updates the current-snapshot gauges.
func UpdateSnapshotStats(events, registrations, transactions int, loadedAt time.Time) {
	DefaultMetrics.SnapshotEvents.Set(float64(events))
	DefaultMetrics.SnapshotRows.WithLabelValues("registrations").Set(float64(registrations))
	DefaultMetrics.SnapshotRows.WithLabelValues("transactions").Set(float64(transactions))
	DefaultMetrics.SnapshotLoadedAt.Set(float64(loadedAt.Unix()))
}

// RecordRowsExported counts rows mirrored into the warehouse.
func RecordRowsExported(record string, n int) {
	DefaultMetrics.RowsExported.WithLabelValues(record).Add(float64(n))
}
