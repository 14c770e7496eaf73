package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Total number of sales admitted",
	})

	SalesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Total number of sale admissions rejected",
	}, []string{"reason"})

	SalesRevenueCentimesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_revenue_centimes_total",
		Help: "Revenue of admitted sales, in centimes",
	})

	ScopeUnresolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scope_unresolved_total",
		Help: "Territory-scoped requests refused because the representative's wilaya is invalid",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
