package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UpstreamRequestsTotal counts calls to external providers by outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_upstream_requests_total",
			Help: "Number of requests issued to upstream providers.",
		},
		[]string{"provider", "outcome"},
	)

	// RateLimitEventsTotal counts upstream 429 responses.
	RateLimitEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_upstream_rate_limit_events_total",
			Help: "Number of 429 responses received from upstream providers.",
		},
		[]string{"provider"},
	)

	// FallbackSynthesesTotal counts responses served from synthesized data.
	FallbackSynthesesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainlens_fallback_syntheses_total",
			Help: "Number of payloads synthesized because live data was unavailable.",
		},
		[]string{"route"},
	)

	// UpstreamRequestDuration observes upstream call latency.
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainlens_upstream_request_duration_seconds",
			Help:    "Latency of upstream provider calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		RateLimitEventsTotal,
		FallbackSynthesesTotal,
		UpstreamRequestDuration,
	)
}
