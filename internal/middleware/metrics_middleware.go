package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/carhub/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records in-flight, count and latency metrics per route.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.IncInFlight()
		defer m.DecInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
