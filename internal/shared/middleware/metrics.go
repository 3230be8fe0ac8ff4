package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/pkg/metrics"
)

// Metrics records request count and latency per matched route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
