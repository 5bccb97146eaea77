package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery converts a handler panic into a 500 response. The stack goes to
// the log, not the client; the request id in the body lets support correlate
// a user report with the log entry.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": GetRequestID(c),
				})
			}
		}()

		c.Next()
	}
}
