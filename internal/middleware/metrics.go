package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careledger/medrec/pkg/metrics"
)

// Metrics records request counts, latency, and in-flight gauge. The path
// label uses the route template so cardinality stays bounded.
func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlightGauge.Inc()
		start := time.Now()

		c.Next()

		m.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
