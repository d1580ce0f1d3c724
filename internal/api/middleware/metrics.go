package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frostdev-ops/sales-insights-go/internal/core/metrics"
)

// MetricsMiddleware creates middleware for collecting HTTP metrics
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		if collector != nil {
			collector.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
		}
	}
}
