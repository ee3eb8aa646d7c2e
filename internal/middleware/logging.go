package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger returns a gin.HandlerFunc that logs one structured line per
// request once the handler chain has finished. Each line carries the
// method, path, status code, latency, client IP and request id, and also
// the raw query and gin errors when present. The level follows the
// status code: Info below 400, Warn for 4xx, Error for 5xx.
//
// Register it after RequestID so the request id is already assigned.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RequestLogger requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		start := time.Now()
		// Copied before c.Next so later handlers cannot change what is logged.
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status_code", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", RequestIDFrom(c)),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("gin_errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Incoming Request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Incoming Request", fields...)
		default:
			logger.Info("Incoming Request", fields...)
		}
	}
}
