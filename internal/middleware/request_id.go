package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID propagates the caller's X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "" outside it.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
