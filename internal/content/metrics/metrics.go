package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlatformRequests tracks completed platform API calls per path
	PlatformRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_platform_requests_total",
			Help: "Total number of platform API requests",
		},
		[]string{"path", "outcome"},
	)

	// PlatformRetries tracks retried platform API attempts per path
	PlatformRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_platform_retries_total",
			Help: "Total number of platform API retry attempts",
		},
		[]string{"path"},
	)

	// PlatformRequestDuration tracks platform API attempt latency
	PlatformRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitenav_platform_request_duration_seconds",
			Help:    "Platform API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// NavigationBuilds tracks navigation projection builds per outcome
	NavigationBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_navigation_builds_total",
			Help: "Total number of navigation projection builds",
		},
		[]string{"outcome"},
	)

	// CacheOps tracks navigation cache lookups per result
	CacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_cache_ops_total",
			Help: "Total number of navigation cache lookups",
		},
		[]string{"result"},
	)

	// FormSubmissions tracks accepted form submissions per kind and status
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_form_submissions_total",
			Help: "Total number of form submissions",
		},
		[]string{"kind", "status"},
	)

	// RedeliveryAttempts tracks redelivery sweeps of queued submissions
	RedeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitenav_redelivery_attempts_total",
			Help: "Total number of submission redelivery attempts",
		},
		[]string{"outcome"},
	)

	// PendingSubmissions tracks submissions currently queued for relay
	PendingSubmissions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sitenav_pending_submissions",
			Help: "Number of submissions waiting for relay",
		},
	)

	// RateLimitedRequests tracks requests rejected by the form rate limiter
	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitenav_rate_limited_requests_total",
			Help: "Total number of requests rejected by rate limiting",
		},
	)

	// DBConnectionPoolUsage tracks database connection pool utilization
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sitenav_db_connection_pool_usage",
			Help: "Database connection pool usage percentage",
		},
	)
)
