package middleware

import (
	"time"

	"tasks_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLog records every inbound request before routing continues. It never
// rejects a request.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		logger.Info("request received",
			"time", time.Now().Format(time.RFC3339Nano),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", id,
		)
		c.Next()
	}
}

// RequestID returns the id assigned by RequestLog, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
