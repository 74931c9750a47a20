package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/infrastructure/metrics"
)

// Metrics ghi request count + duration, label path dùng route template (c.FullPath)
// để tránh cardinality nổ theo id
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
