package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thukpa_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thukpa_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	ThreatEventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thukpa_threat_events_total",
			Help: "Threat events detected, by type and severity",
		},
		[]string{"type", "severity"},
	)

	BlockedRequestsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "thukpa_blocked_requests_total",
			Help: "Requests denied because the device fingerprint is blocked",
		},
	)

	LoginRateLimitedTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "thukpa_login_rate_limited_total",
			Help: "Login attempts rejected by the rate limiter",
		},
	)

	FeedbackSubmissionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thukpa_feedback_submissions_total",
			Help: "Feedback submissions accepted, by category",
		},
		[]string{"category"},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
