package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReportsIngested counts reports handled by the coordinator
	ReportsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11",
			Name:      "reports_ingested_total",
			Help:      "Total number of 802.11 reports handled, by result",
		},
		[]string{"result"},
	)

	// ReportDuration observes how long one report takes to persist and evaluate
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dot11",
			Name:      "report_duration_seconds",
			Help:      "Time spent handling one 802.11 report",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// SSIDFailures counts advertised networks that could not be processed
	SSIDFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dot11",
			Name:      "ssid_failures_total",
			Help:      "Total number of advertised networks skipped because of an error",
		},
	)

	// AlertsRaised counts alerts handed to the alert service
	AlertsRaised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11",
			Name:      "alerts_raised_total",
			Help:      "Total number of alerts raised",
		},
		[]string{"detection_type"},
	)

	// RetentionDeleted counts rows removed by the retention sweeper
	RetentionDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11",
			Name:      "retention_deleted_rows_total",
			Help:      "Total number of rows deleted by retention cleaning",
		},
		[]string{"table"},
	)

	// ReportsDropped counts reports rejected by the ingest queue
	ReportsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11",
			Name:      "reports_dropped_total",
			Help:      "Total number of reports dropped before processing",
		},
		[]string{"reason"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Ignore registration errors, a metric may already be registered
		prometheus.DefaultRegisterer.Register(ReportsIngested)
		prometheus.DefaultRegisterer.Register(ReportDuration)
		prometheus.DefaultRegisterer.Register(SSIDFailures)
		prometheus.DefaultRegisterer.Register(AlertsRaised)
		prometheus.DefaultRegisterer.Register(RetentionDeleted)
		prometheus.DefaultRegisterer.Register(ReportsDropped)
	})
}
