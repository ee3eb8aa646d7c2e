package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware returns a gin.HandlerFunc that recovers from panics in
// downstream handlers. The panic value and the stack of the panicking
// goroutine are logged with the request id. The client gets a generic 500
// unless a response was already started, and the chain is aborted either way.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RecoveryMiddleware requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("stacktrace", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", RequestIDFrom(c)),
				)
				// Writing twice would trigger a superfluous WriteHeader.
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
