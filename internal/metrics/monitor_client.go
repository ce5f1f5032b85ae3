package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	monitorClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolmonitor",
		Subsystem: "monitor_client",
		Name:      "requests_total",
		Help:      "Count of Bulk API and token API requests.",
	}, []string{"method", "network", "status"})
	monitorClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "poolmonitor",
		Subsystem: "monitor_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of Bulk API and token API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "network", "status"})
)

// MonitorClient tracks metrics for outbound API requests.
type MonitorClient struct {
	network string
}

// NewMonitorClient constructs a metrics collector for API requests.
func NewMonitorClient(network string) *MonitorClient {
	if network == "" {
		network = "unknown"
	}
	return &MonitorClient{network: network}
}

// Observe records a single request outcome and duration.
func (m MonitorClient) Observe(method string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	monitorClientRequestsTotal.WithLabelValues(method, m.network, status).Inc()
	monitorClientRequestDuration.WithLabelValues(method, m.network, status).Observe(time.Since(started).Seconds())
}
