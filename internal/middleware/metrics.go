package middleware

import (
	"strconv"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be recorded.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PrometheusMiddleware records request counts and latencies per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
