package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "logvault_request_duration_seconds",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// Unlabelled: project_source is caller supplied text.
	LogsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logvault_error_logs_submitted_total",
		Help: "Error logs accepted on the write endpoint",
	})

	UnhandledFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logvault_unhandled_failures_total",
		Help: "Requests that ended in an unhandled failure",
	}, []string{"kind"})

	StoreWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logvault_store_write_errors_total",
		Help: "Failed inserts, by collection",
	}, []string{"collection"})
)
