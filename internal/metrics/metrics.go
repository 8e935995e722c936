// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Cache metrics
	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "azcap",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of cache hits by lookup identity",
		},
		[]string{"identity"},
	)

	cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "azcap",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses by lookup identity",
		},
		[]string{"identity"},
	)

	// Validation metrics
	validationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "azcap",
			Subsystem: "validate",
			Name:      "results_total",
			Help:      "Total number of validated plan resources by verdict",
		},
		[]string{"status"},
	)

	planDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "azcap",
			Subsystem: "validate",
			Name:      "plan_duration_seconds",
			Help:      "Duration of full plan validations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
	)

	// ARM API metrics
	upstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "azcap",
			Subsystem: "arm",
			Name:      "calls_total",
			Help:      "Total number of ARM API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "azcap",
			Subsystem: "arm",
			Name:      "call_latency_seconds",
			Help:      "Latency of ARM API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~25s
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		cacheHitsTotal,
		cacheMissesTotal,
		validationsTotal,
		planDuration,
		upstreamCallsTotal,
		upstreamLatency,
	)
}

// ObserveCache records one cache lookup. Shaped to plug into the cache's
// observer hook.
func ObserveCache(identity string, hit bool) {
	if hit {
		cacheHitsTotal.WithLabelValues(identity).Inc()
		return
	}
	cacheMissesTotal.WithLabelValues(identity).Inc()
}

// RecordValidation records one per-resource verdict.
func RecordValidation(status string) {
	validationsTotal.WithLabelValues(status).Inc()
}

// RecordPlanDuration records the wall time of one full plan validation.
func RecordPlanDuration(seconds float64) {
	planDuration.Observe(seconds)
}

// RecordUpstreamCall records one ARM API call.
func RecordUpstreamCall(operation, result string, latency float64) {
	upstreamCallsTotal.WithLabelValues(operation, result).Inc()
	upstreamLatency.WithLabelValues(operation).Observe(latency)
}
