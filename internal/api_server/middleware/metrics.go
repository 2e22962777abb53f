package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/platform/metrics"
)

// Metrics records request count, duration and in-flight requests by route
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		m.InFlight(1)
		defer m.InFlight(-1)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
