package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafepos_http_requests_total",
			Help: "Total HTTP requests processed, by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cafepos_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	billsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cafepos_bills_created_total",
			Help: "Bills finalized since startup",
		},
	)
)

// MetricsMiddleware records request counts and latencies per route. The
// route template is used rather than the raw path so bill IDs do not blow
// up label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
	}
}

// CountBillCreated bumps the bill counter. Called by the bill handler on
// successful checkout.
func CountBillCreated() {
	billsCreatedTotal.Inc()
}
