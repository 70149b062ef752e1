package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the platform-level Prometheus metrics (per-module metrics
// live next to their module).
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers the platform metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seedlab_http_request_duration_seconds",
			Help:    "HTTP request duration by method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "status"}),
	}
}

// ObserveHTTPRequest records one request's duration.
func (m *Metrics) ObserveHTTPRequest(method string, status int, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
