package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	schedulerCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "cycles_total",
		Help:      "Count of polling cycles.",
	}, []string{"pool", "status"})

	schedulerCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a polling cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"pool", "status"})

	schedulerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "events_total",
		Help:      "Count of emitted events.",
	}, []string{"pool", "type"})

	schedulerConsecutiveErrors = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "consecutive_errors",
		Help:      "Number of failed cycles in a row.",
	}, []string{"pool"})

	schedulerLastBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "checkpoint_last_block",
		Help:      "Last block of the checkpoint.",
	}, []string{"pool"})

	schedulerDedupRetained = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "poolmonitor",
		Subsystem: "scheduler",
		Name:      "dedup_retained",
		Help:      "Number of emitted event ids kept by the dedup filter.",
	}, []string{"pool"})
)

// Scheduler tracks metrics for the polling scheduler of a pool.
type Scheduler struct {
	pool func() string
}

// NewScheduler constructs a Scheduler collector labelled with the pool returned by pool.
func NewScheduler(pool func() string) *Scheduler {
	if pool == nil {
		pool = func() string { return "" }
	}
	return &Scheduler{pool: pool}
}

func (m Scheduler) label() string {
	if p := m.pool(); p != "" {
		return p
	}
	return "unknown"
}

// ObserveCycle records a cycle outcome and duration.
func (m Scheduler) ObserveCycle(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	pool := m.label()
	schedulerCyclesTotal.WithLabelValues(pool, status).Inc()
	schedulerCycleDuration.WithLabelValues(pool, status).Observe(time.Since(started).Seconds())
}

// ObserveEvents adds count emitted events of eventType.
func (m Scheduler) ObserveEvents(eventType string, count int) {
	schedulerEventsTotal.WithLabelValues(m.label(), eventType).Add(float64(count))
}

// SetConsecutiveErrors publishes the error counter.
func (m Scheduler) SetConsecutiveErrors(count int) {
	schedulerConsecutiveErrors.WithLabelValues(m.label()).Set(float64(count))
}

// SetLastBlock publishes the checkpoint last block.
func (m Scheduler) SetLastBlock(block uint64) {
	schedulerLastBlock.WithLabelValues(m.label()).Set(float64(block))
}

// SetDedupRetained publishes the size of the dedup filter.
func (m Scheduler) SetDedupRetained(count int) {
	schedulerDedupRetained.WithLabelValues(m.label()).Set(float64(count))
}
