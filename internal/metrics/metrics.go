// Package metrics exposes Prometheus instrumentation for the application.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	directoryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "userboard_directory_requests_total",
		Help: "Requests issued to the remote user directory, by operation and outcome.",
	}, []string{"operation", "outcome"})

	directoryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "userboard_directory_request_duration_seconds",
		Help:    "Latency of remote user directory requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveDirectoryRequest records one upstream call.
func ObserveDirectoryRequest(operation, outcome string, elapsed time.Duration) {
	directoryRequests.WithLabelValues(operation, outcome).Inc()
	directoryLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
