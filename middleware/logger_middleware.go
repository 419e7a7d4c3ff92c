package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/uwrite-api/logutils"
)

// RequestLogger logs every request through logrus once it completes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logutils.Log.WithFields(logutils.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   status,
			"latency":  time.Since(start).String(),
			"clientIp": c.ClientIP(),
		})
		if userID := CurrentUserID(c); userID != "" {
			entry = entry.WithField("userId", userID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Log(logrus.ErrorLevel, "request failed")
		case status >= 400:
			entry.Log(logrus.InfoLevel, "request rejected")
		default:
			entry.Log(logrus.DebugLevel, "request served")
		}
	}
}
