package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/lib/metrics"
)

// Metrics records request count and latency per matched route
func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// the route template keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
