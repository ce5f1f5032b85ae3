package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolmonitor",
		Subsystem: "token_cache",
		Name:      "lookups_total",
		Help:      "Count of token metadata lookups by outcome.",
	}, []string{"outcome"})

	tokenCacheFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolmonitor",
		Subsystem: "token_cache",
		Name:      "fetch_total",
		Help:      "Count of token metadata fetch attempts.",
	}, []string{"status"})

	tokenCacheFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "poolmonitor",
		Subsystem: "token_cache",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of token metadata fetch attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// TokenCache tracks metrics for the token metadata cache.
type TokenCache struct{}

// NewTokenCache constructs a TokenCache collector.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// ObserveLookup counts a lookup outcome.
func (m TokenCache) ObserveLookup(outcome string) {
	tokenCacheLookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records a single fetch attempt.
func (m TokenCache) ObserveFetch(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	tokenCacheFetchTotal.WithLabelValues(status).Inc()
	tokenCacheFetchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
