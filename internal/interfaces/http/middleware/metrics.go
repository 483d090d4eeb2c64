package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripcover_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripcover_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	verificationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripcover_verification_decisions_total",
		Help: "Total number of admin verification decisions",
	}, []string{"outcome"})

	walletChangeDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripcover_wallet_change_decisions_total",
		Help: "Total number of admin wallet change decisions",
	}, []string{"outcome"})
)

// MetricsMiddleware records request counts and latency per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CountVerificationDecision counts an admin verdict on a document
func CountVerificationDecision(outcome string) {
	verificationDecisionsTotal.WithLabelValues(outcome).Inc()
}

// CountWalletChangeDecision counts an admin verdict on a change request
func CountWalletChangeDecision(outcome string) {
	walletChangeDecisionsTotal.WithLabelValues(outcome).Inc()
}
