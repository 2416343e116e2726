// Package metrics defines the Prometheus collectors exported by the gateway.
//
// Collectors:
//   - gateway_cache_requests_total{category, result} (Counter): facade lookups by result (hit, miss, bypass)
//   - gateway_cache_errors_total{operation} (Counter): cache backend failures (get, set)
//   - gateway_coalesced_requests_total{category} (Counter): callers that shared another caller's vendor call
//   - gateway_vendor_requests_total{vendor, outcome} (Counter): vendor calls by outcome (ok, not_found, error, unreachable)
//   - gateway_vendor_request_duration_seconds{vendor} (Histogram): vendor call latency including retries
//
// Example queries:
//
//	# Cache hit rate per category
//	sum by (category) (rate(gateway_cache_requests_total{result="hit"}[5m]))
//	  / sum by (category) (rate(gateway_cache_requests_total[5m]))
//
//	# P95 vendor latency
//	histogram_quantile(0.95, rate(gateway_vendor_request_duration_seconds_bucket[5m]))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultBypass = "bypass"
)

// Vendor call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeUnreachable = "unreachable"
)

// Metrics holds every collector, registered against one registry.
type Metrics struct {
	CacheRequests     *prometheus.CounterVec
	CacheErrors       *prometheus.CounterVec
	CoalescedRequests *prometheus.CounterVec
	VendorRequests    *prometheus.CounterVec
	VendorDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_requests_total",
				Help: "Total facade cache lookups by category and result",
			},
			[]string{"category", "result"},
		),
		CacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_errors_total",
				Help: "Total cache backend errors by operation",
			},
			[]string{"operation"},
		),
		CoalescedRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_coalesced_requests_total",
				Help: "Total requests served by another request's in-flight vendor call",
			},
			[]string{"category"},
		),
		VendorRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_vendor_requests_total",
				Help: "Total vendor calls by vendor and outcome",
			},
			[]string{"vendor", "outcome"},
		),
		VendorDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_vendor_request_duration_seconds",
				Help:    "Vendor call duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"vendor"},
		),
	}
}

// NewNop returns collectors bound to a private registry. Useful in tests
// and for components constructed without metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
